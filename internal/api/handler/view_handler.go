package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ViewHandler answers page routes with the view model the front end renders:
// the page name, the session flags and any route parameters.
type ViewHandler struct{}

func NewViewHandler() *ViewHandler {
	return &ViewHandler{}
}

// Render returns a handler for the named page.
//
// @Summary      Page view model
// @Tags         views
// @Produce      json
// @Success      200  {object}  viewResponse
// @Router       /home [get]
func (h *ViewHandler) Render(view string) echo.HandlerFunc {
	return func(c echo.Context) error {
		st, err := ctxSession(c)
		if err != nil {
			return err
		}

		resp := viewResponse{
			View:          view,
			Authenticated: st.IsAuthenticated(),
			IsAdmin:       st.IsAdmin(),
		}
		if identity := st.CurrentIdentity(); identity != nil {
			resp.User = identity
		}
		if names := c.ParamNames(); len(names) > 0 {
			resp.Params = make(map[string]string, len(names))
			for _, name := range names {
				resp.Params[name] = c.Param(name)
			}
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// Redirect sends the visitor to path with a 302.
func (h *ViewHandler) Redirect(path string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Redirect(http.StatusFound, path)
	}
}
