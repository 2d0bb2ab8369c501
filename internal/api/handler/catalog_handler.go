package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/cineticket/portal/internal/core/domain"
	"github.com/cineticket/portal/internal/core/ports"
)

// CatalogHandler forwards catalog reads, admin edits and payments to the
// cinema API, authorized as the caller's session.
type CatalogHandler struct {
	catalog ports.CatalogBackend
}

func NewCatalogHandler(catalog ports.CatalogBackend) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

func (h *CatalogHandler) client(c echo.Context) (ports.CatalogClient, error) {
	st, err := ctxSession(c)
	if err != nil {
		return nil, err
	}
	return h.catalog.WithSession(st), nil
}

// List returns every item of a collection.
//
// @Summary      List a catalog collection
// @Tags         catalog
// @Produce      json
// @Param        resource  path  string  true  "Collection"  Enums(filmes, cinemas, salas, sessoes, alimentos)
// @Success      200  {array}   object
// @Failure      503  {object}  errorResponse
// @Router       /api/{resource} [get]
func (h *CatalogHandler) List(resource domain.Resource) echo.HandlerFunc {
	return func(c echo.Context) error {
		cl, err := h.client(c)
		if err != nil {
			return err
		}
		data, err := cl.List(c.Request().Context(), string(resource))
		if err != nil {
			return err
		}
		return writeJSON(c, http.StatusOK, data)
	}
}

// NowShowing returns the movies currently in theatres.
//
// @Summary      Movies now showing
// @Tags         catalog
// @Produce      json
// @Success      200  {array}   object
// @Failure      503  {object}  errorResponse
// @Router       /api/filmes/em-cartaz [get]
func (h *CatalogHandler) NowShowing(c echo.Context) error {
	cl, err := h.client(c)
	if err != nil {
		return err
	}
	data, err := cl.List(c.Request().Context(), string(domain.ResourceMovies)+"/em-cartaz")
	if err != nil {
		return err
	}
	return writeJSON(c, http.StatusOK, data)
}

// Get returns one item by id.
//
// @Summary      Get a catalog item
// @Tags         catalog
// @Produce      json
// @Param        resource  path  string  true  "Collection"
// @Param        id        path  string  true  "Item id"
// @Success      200  {object}  object
// @Failure      404  {object}  errorResponse
// @Router       /api/{resource}/{id} [get]
func (h *CatalogHandler) Get(resource domain.Resource) echo.HandlerFunc {
	return func(c echo.Context) error {
		cl, err := h.client(c)
		if err != nil {
			return err
		}
		data, err := cl.Get(c.Request().Context(), itemPath(resource, c.Param("id")))
		if err != nil {
			return err
		}
		return writeJSON(c, http.StatusOK, data)
	}
}

// Create adds an item. Admin only.
//
// @Summary      Create a catalog item
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        resource  path  string  true  "Collection"
// @Success      201  {object}  object
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /admin/api/{resource} [post]
func (h *CatalogHandler) Create(resource domain.Resource) echo.HandlerFunc {
	return func(c echo.Context) error {
		body, err := readJSONBody(c)
		if err != nil {
			return err
		}
		cl, err := h.client(c)
		if err != nil {
			return err
		}
		data, err := cl.Create(c.Request().Context(), string(resource), body)
		if err != nil {
			return err
		}
		return writeJSON(c, http.StatusCreated, data)
	}
}

// Update replaces an item. Admin only.
//
// @Summary      Update a catalog item
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        resource  path  string  true  "Collection"
// @Param        id        path  string  true  "Item id"
// @Success      200  {object}  object
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/api/{resource}/{id} [put]
func (h *CatalogHandler) Update(resource domain.Resource) echo.HandlerFunc {
	return func(c echo.Context) error {
		body, err := readJSONBody(c)
		if err != nil {
			return err
		}
		cl, err := h.client(c)
		if err != nil {
			return err
		}
		data, err := cl.Update(c.Request().Context(), itemPath(resource, c.Param("id")), body)
		if err != nil {
			return err
		}
		return writeJSON(c, http.StatusOK, data)
	}
}

// Delete removes an item. Admin only.
//
// @Summary      Delete a catalog item
// @Tags         admin
// @Param        resource  path  string  true  "Collection"
// @Param        id        path  string  true  "Item id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /admin/api/{resource}/{id} [delete]
func (h *CatalogHandler) Delete(resource domain.Resource) echo.HandlerFunc {
	return func(c echo.Context) error {
		cl, err := h.client(c)
		if err != nil {
			return err
		}
		if err := cl.Delete(c.Request().Context(), itemPath(resource, c.Param("id"))); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// ProcessPayment submits a ticket purchase for the signed-in customer.
//
// @Summary      Process a payment
// @Tags         payment
// @Accept       json
// @Produce      json
// @Success      200  {object}  object
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /pagamento/processar [post]
func (h *CatalogHandler) ProcessPayment(c echo.Context) error {
	body, err := readJSONBody(c)
	if err != nil {
		return err
	}
	cl, err := h.client(c)
	if err != nil {
		return err
	}
	data, err := cl.Create(c.Request().Context(), "pagamentos/processar", body)
	if err != nil {
		return err
	}
	return writeJSON(c, http.StatusOK, data)
}

func itemPath(resource domain.Resource, id string) string {
	return string(resource) + "/" + url.PathEscape(id)
}

func readJSONBody(c echo.Context) (json.RawMessage, error) {
	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable body")
	}
	if len(raw) == 0 || !json.Valid(raw) {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "body must be a JSON document")
	}
	return raw, nil
}

// writeJSON relays a backend payload. A backend that answered with no body
// yields an empty object.
func writeJSON(c echo.Context, code int, data json.RawMessage) error {
	if len(data) == 0 {
		data = json.RawMessage("{}")
	}
	return c.JSONBlob(code, data)
}
