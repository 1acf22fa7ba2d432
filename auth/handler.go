package auth

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/fleetgrid/fleetgrid/auth/azuread"
	"github.com/fleetgrid/fleetgrid/auth/token"
	apperrors "github.com/fleetgrid/fleetgrid/errors"
	"github.com/fleetgrid/fleetgrid/logger"
	"github.com/fleetgrid/fleetgrid/server"
	"github.com/fleetgrid/fleetgrid/user"
	"github.com/fleetgrid/fleetgrid/util"
)

// successPath is where SSO callbacks land the browser, carrying the token
// as a query parameter because no header can be attached to a redirect.
const successPath = "/auth/microsoft/success"

// Controller serves the session endpoints: local login, the SSO
// redirect/callback pair for API and web clients, and the success endpoint
// that returns the authenticated principal.
type Controller struct {
	local        *LocalStrategy
	ssoAPI       *SSOAPIStrategy
	ssoWeb       *SSOWebStrategy
	bearerQuery  *BearerQueryStrategy
	tokens       *token.Service
	provider     *azuread.Provider
	frontEndHost string
	log          *logger.Logger
}

// NewController wires the session controller from its collaborators.
// The provider may be nil when Azure AD is not configured; the SSO
// endpoints then answer 404.
func NewController(
	local *LocalStrategy,
	ssoAPI *SSOAPIStrategy,
	ssoWeb *SSOWebStrategy,
	bearerQuery *BearerQueryStrategy,
	tokens *token.Service,
	provider *azuread.Provider,
	frontEndHost string,
	log *logger.Logger,
) *Controller {
	return &Controller{
		local:        local,
		ssoAPI:       ssoAPI,
		ssoWeb:       ssoWeb,
		bearerQuery:  bearerQuery,
		tokens:       tokens,
		provider:     provider,
		frontEndHost: frontEndHost,
		log:          log.WithComponent("auth"),
	}
}

// RegisterRoutes mounts the session endpoints under /auth.
func (ctrl *Controller) RegisterRoutes(r gin.IRouter) {
	grp := r.Group("/auth")
	grp.POST("/local/login", ctrl.LocalLogin)
	if ctrl.provider != nil {
		grp.GET("/microsoft/login", ctrl.MicrosoftLogin)
		grp.GET("/microsoft/connect", ctrl.MicrosoftConnect)
		grp.GET("/microsoft/connect-web", ctrl.MicrosoftConnectWeb)
		grp.GET("/microsoft/success", QueryGuard(ctrl.bearerQuery), ctrl.MicrosoftSuccess)
	}
}

// localLoginRequest is the local login body.
type localLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// loginResponse is the successful login body.
type loginResponse struct {
	AccessToken string         `json:"access_token"`
	User        user.Principal `json:"user"`
}

// LocalLogin handles POST /auth/local/login.
func (ctrl *Controller) LocalLogin(c *gin.Context) {
	var req localLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.Validation("username and password are required").WithCause(err))
		return
	}

	u, err := ctrl.local.Attempt(c.Request.Context(), Credentials{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	signed, err := ctrl.tokens.Issue(u.ID.String(), u.Username)
	if err != nil {
		server.RespondWithError(c, apperrors.Internal(err))
		return
	}

	ctrl.log.Info("Local login", map[string]interface{}{
		logger.FieldUsername: u.Username,
		logger.FieldStrategy: ctrl.local.Name(),
	})
	c.JSON(http.StatusOK, loginResponse{AccessToken: signed, User: u.Principal()})
}

// MicrosoftLogin handles GET /auth/microsoft/login: it seals the flow
// state into the encrypted cookie and redirects to the identity provider.
func (ctrl *Controller) MicrosoftLogin(c *gin.Context) {
	ctrl.redirectToProvider(c, azuread.FlowAPI)
}

func (ctrl *Controller) redirectToProvider(c *gin.Context, flow string) {
	state, err := azuread.GenerateState()
	if err != nil {
		server.RespondWithError(c, apperrors.Internal(err))
		return
	}
	nonce, err := azuread.GenerateNonce()
	if err != nil {
		server.RespondWithError(c, apperrors.Internal(err))
		return
	}

	sealed, err := ctrl.provider.Cookie().Seal(azuread.FlowState{State: state, Nonce: nonce, Flow: flow})
	if err != nil {
		server.RespondWithError(c, apperrors.Internal(err))
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(azuread.CookieName, sealed, 600, "/auth/microsoft", "", true, true)
	c.Redirect(http.StatusFound, ctrl.provider.LoginURL(flow, state, nonce))
}

// MicrosoftConnect handles the API-client provider callback: it completes
// the SSO strategy, issues a token, and redirects to the success endpoint
// with the token as a query parameter.
func (ctrl *Controller) MicrosoftConnect(c *gin.Context) {
	signed, ok := ctrl.completeCallback(c, azuread.FlowAPI, ctrl.ssoAPI)
	if !ok {
		return
	}
	c.Redirect(http.StatusFound, successPath+"?"+AccessTokenParam+"="+url.QueryEscape(signed))
}

// MicrosoftConnectWeb handles the web-client provider callback; identical
// verification, but the browser is sent to the configured front-end origin.
func (ctrl *Controller) MicrosoftConnectWeb(c *gin.Context) {
	signed, ok := ctrl.completeCallback(c, azuread.FlowWeb, ctrl.ssoWeb)
	if !ok {
		return
	}
	c.Redirect(http.StatusFound, ctrl.frontEndHost+successPath+"?"+AccessTokenParam+"="+url.QueryEscape(signed))
}

// completeCallback verifies the state cookie, exchanges the code, runs the
// strategy, and issues a session token.
func (ctrl *Controller) completeCallback(c *gin.Context, flow string, strategy Strategy) (string, bool) {
	sealed, err := c.Cookie(azuread.CookieName)
	if err != nil {
		server.RespondWithError(c, apperrors.Unauthorized("Missing login state."))
		return "", false
	}
	fs, err := ctrl.provider.Cookie().Open(sealed)
	if err != nil || fs.Flow != flow || fs.State != c.Query("state") {
		server.RespondWithError(c, apperrors.Unauthorized("Invalid login state."))
		return "", false
	}

	code := c.Query("code")
	if code == "" {
		server.RespondWithError(c, apperrors.Unauthorized("Missing authorization code."))
		return "", false
	}

	email, err := ctrl.provider.Exchange(c.Request.Context(), flow, code, fs.Nonce)
	if err != nil {
		server.RespondWithError(c, err)
		return "", false
	}

	u, err := strategy.Attempt(c.Request.Context(), Credentials{Email: email})
	if err != nil {
		server.RespondWithError(c, err)
		return "", false
	}

	signed, err := ctrl.tokens.Issue(u.ID.String(), u.Username)
	if err != nil {
		server.RespondWithError(c, apperrors.Internal(err))
		return "", false
	}

	// State cookie is single-use.
	c.SetCookie(azuread.CookieName, "", -1, "/auth/microsoft", "", true, true)

	ctrl.log.Info("SSO login", map[string]interface{}{
		logger.FieldUsername: u.Username,
		logger.FieldStrategy: strategy.Name(),
	})
	return signed, true
}

// MicrosoftSuccess handles GET /auth/microsoft/success behind the
// query-parameter bearer guard. It returns the principal with the
// soft-delete flag stripped.
func (ctrl *Controller) MicrosoftSuccess(c *gin.Context) {
	u, ok := CurrentUser(c)
	if !ok {
		server.RespondWithError(c, apperrors.Unauthorized(""))
		return
	}
	body, err := util.OmitKeys(u.Principal(), "deleted")
	if err != nil {
		server.RespondWithError(c, apperrors.Internal(err))
		return
	}
	c.JSON(http.StatusOK, body)
}
