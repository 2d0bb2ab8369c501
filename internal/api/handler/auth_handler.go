package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cineticket/portal/internal/api/middleware"
	"github.com/cineticket/portal/internal/core/domain"
	"github.com/cineticket/portal/internal/core/ports"
)

type AuthHandler struct {
	auth      ports.AuthService
	homePath  string
	loginPath string
}

func NewAuthHandler(auth ports.AuthService, homePath, loginPath string) *AuthHandler {
	return &AuthHandler{auth: auth, homePath: homePath, loginPath: loginPath}
}

type loginRequest struct {
	Email    string `json:"email"    form:"email"    validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type addressRequest struct {
	Street    string `json:"endereco"   validate:"required"`
	ZipCode   string `json:"cep"        validate:"required"`
	Reference string `json:"referencia"`
}

type registerRequest struct {
	Name      string         `json:"nome"           validate:"required"`
	BirthDate string         `json:"dataNascimento" validate:"required,datetime=2006-01-02"`
	TaxID     string         `json:"cpf"            validate:"required"`
	Email     string         `json:"email"          validate:"required,email"`
	Password  string         `json:"password"       validate:"required,min=6"`
	Address   addressRequest `json:"localidade"`
}

type sessionResponse struct {
	User    *domain.Identity `json:"user"`
	IsAdmin bool             `json:"isAdmin"`
}

type registerResponse struct {
	Message  string `json:"message"`
	Redirect string `json:"redirect"`
}

// Login authenticates against the auth backend and starts the browser session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	if _, err := ctxSession(c); err != nil {
		return err
	}

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	// A successful login always continues under a new session id.
	fresh, commit, err := middleware.RenewSession(c)
	if err != nil {
		return err
	}
	identity, err := h.auth.Login(c.Request().Context(), fresh, domain.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		return err
	}
	commit()

	return c.JSON(http.StatusOK, sessionResponse{User: identity, IsAdmin: identity.IsAdmin()})
}

// Register creates a customer account. The role is always ROLE_USER.
//
// @Summary      Register a new customer
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Customer details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	err := h.auth.Register(c.Request().Context(), domain.Registration{
		Name:      req.Name,
		BirthDate: req.BirthDate,
		TaxID:     req.TaxID,
		Email:     req.Email,
		Password:  req.Password,
		Address: domain.Address{
			Street:    req.Address.Street,
			ZipCode:   req.Address.ZipCode,
			Reference: req.Address.Reference,
		},
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, registerResponse{Message: "account created", Redirect: h.loginPath})
}

// Logout ends the browser session and sends the visitor home.
//
// @Summary      Logout
// @Tags         auth
// @Success      303
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	st, err := ctxSession(c)
	if err != nil {
		return err
	}
	st.Logout(c.Request().Context())
	return c.Redirect(http.StatusSeeOther, h.homePath)
}

// Me returns the signed-in identity.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	st, err := ctxSession(c)
	if err != nil {
		return err
	}
	if !st.IsAuthenticated() {
		return domain.ErrNotAuthenticated
	}
	return c.JSON(http.StatusOK, sessionResponse{User: st.CurrentIdentity(), IsAdmin: st.IsAdmin()})
}
