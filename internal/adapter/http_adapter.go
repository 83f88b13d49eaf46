package adapter

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"plant-pal/api"
	"plant-pal/internal/core"
	"plant-pal/internal/core/model"
	"strings"
)

const (
	stateCookie     = "oauth_state"
	afterLoginPath  = "/products"
	maxRequestBytes = 1 << 20
)

var _ api.ServerInterface = (*Handler)(nil)

type Handler struct {
	Svc     *core.Service
	Auth    *Authenticator
	Google  *GoogleOAuth  // nil disables Google sign-in
	Limiter *LoginLimiter // nil disables login throttling
	Metrics *Metrics      // optional
	secure  bool
	log     *slog.Logger
}

type HandlerOption func(*Handler)

func WithGoogle(g *GoogleOAuth) HandlerOption { return func(h *Handler) { h.Google = g } }

func WithLoginLimiter(l *LoginLimiter) HandlerOption { return func(h *Handler) { h.Limiter = l } }

func WithMetrics(m *Metrics) HandlerOption { return func(h *Handler) { h.Metrics = m } }

func WithSecureCookies(secure bool) HandlerOption { return func(h *Handler) { h.secure = secure } }

func NewHTTPHandler(svc *core.Service, auth *Authenticator, logger *slog.Logger, opts ...HandlerOption) *Handler {
	h := &Handler{Svc: svc, Auth: auth, log: logger}
	for _, o := range opts {
		o(h)
	}
	return h
}

type httpError struct {
	Error struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Details map[string]interface{} `json:"details,omitempty"`
	} `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string, details map[string]interface{}) {
	e := httpError{}
	e.Error.Code = code
	e.Error.Message = msg
	e.Error.Details = details
	writeJSON(w, status, e)
}

// fail maps core and auth errors onto the error envelope.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var fe *core.FieldError
	switch {
	case errors.As(err, &fe):
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), map[string]interface{}{fe.Field: fe.Value})
	case errors.Is(err, model.ErrValidation):
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
	case errors.Is(err, model.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "plant not found", nil)
	case errors.Is(err, model.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", err.Error(), nil)
	default:
		h.log.ErrorContext(r.Context(), "request failed", slog.String("path", r.URL.Path), slog.Any("err", err))
		writeError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
	}
}

// ParamError is the api.ChiServerOptions.ErrorHandlerFunc for malformed
// path and query parameters.
func (h *Handler) ParamError(w http.ResponseWriter, _ *http.Request, err error) {
	var details map[string]interface{}
	var pe *api.InvalidParamFormatError
	if errors.As(err, &pe) {
		details = map[string]interface{}{"param": pe.ParamName}
	}
	writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), details)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid JSON body: "+err.Error(), nil)
		return false
	}
	return true
}

func (h *Handler) ListPlants(w http.ResponseWriter, r *http.Request, params api.ListPlantsParams) {
	q := model.DefaultQueryState()
	if params.Q != nil {
		q.SearchText = *params.Q
	}
	if params.Category != nil && *params.Category != "" {
		q.Category = model.Category(*params.Category)
	}
	if params.Difficulty != nil && *params.Difficulty != "" {
		q.Difficulty = model.Difficulty(*params.Difficulty)
	}
	if params.Sort != nil && *params.Sort != "" {
		q.SortKey = model.SortKey(*params.Sort)
	}

	view, err := h.Svc.ListPlants(r.Context(), q)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if h.Metrics != nil {
		h.Metrics.ObserveQuery(view)
	}

	writeJSON(w, http.StatusOK, api.PlantList{
		Items:      toAPIPlants(view.Items),
		TotalCount: view.TotalCount,
		MatchCount: view.MatchCount,
		Query: api.PlantQuery{
			Q:          q.SearchText,
			Category:   string(q.Category),
			Difficulty: string(q.Difficulty),
			Sort:       string(q.SortKey),
		},
	})
}

func (h *Handler) ListFeaturedPlants(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toAPIPlants(h.Svc.FeaturedPlants(r.Context())))
}

func (h *Handler) GetPlantById(w http.ResponseWriter, r *http.Request, id int) {
	p, err := h.Svc.GetPlant(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAPIPlant(p))
}

// GetFacets returns the vocabularies the way filter controls list them: the
// facet lists start with the "All" wildcard.
func (h *Handler) GetFacets(w http.ResponseWriter, r *http.Request) {
	v := h.Svc.Facets(r.Context())
	out := api.Facets{
		Categories:   []string{model.All},
		Difficulties: []string{model.All},
		Sizes:        make([]string, 0, len(v.Sizes)),
		SortOptions:  make([]api.SortOption, 0, len(v.SortOptions)),
	}
	for _, c := range v.Categories {
		out.Categories = append(out.Categories, string(c))
	}
	for _, d := range v.Difficulties {
		out.Difficulties = append(out.Difficulties, string(d))
	}
	for _, s := range v.Sizes {
		out.Sizes = append(out.Sizes, string(s))
	}
	for _, o := range v.SortOptions {
		out.SortOptions = append(out.SortOptions, api.SortOption{Key: string(o.Key), Label: o.Label})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if !h.allowLogin(w, r) {
		return
	}
	var in api.LoginRequest
	if !decodeJSON(w, r, &in) {
		return
	}
	u, err := h.Auth.SignIn(in.Email, in.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.startSession(w, r, http.StatusOK, u, resolveCallback(r, in.CallbackUrl))
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if !h.allowLogin(w, r) {
		return
	}
	var in api.RegisterRequest
	if !decodeJSON(w, r, &in) {
		return
	}
	u, err := h.Auth.Register(model.RegisterInput{
		Name:            in.Name,
		Email:           in.Email,
		Password:        in.Password,
		ConfirmPassword: in.ConfirmPassword,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.startSession(w, r, http.StatusCreated, u, resolveCallback(r, in.CallbackUrl))
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	clearTokenCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "no active session", nil)
		return
	}
	writeJSON(w, http.StatusOK, api.Session{User: toAPIUser(u)})
}

func (h *Handler) GoogleSignIn(w http.ResponseWriter, r *http.Request, params api.GoogleSignInParams) {
	if h.Google == nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "google sign-in is not configured", nil)
		return
	}
	state, err := newState()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	value := state
	if params.CallbackUrl != nil && *params.CallbackUrl != "" {
		value += "." + base64.RawURLEncoding.EncodeToString([]byte(resolveCallback(r, *params.CallbackUrl)))
	}
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.secure,
	})
	http.Redirect(w, r, h.Google.AuthCodeURL(state), http.StatusFound)
}

func (h *Handler) GoogleCallback(w http.ResponseWriter, r *http.Request, params api.GoogleCallbackParams) {
	if h.Google == nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "google sign-in is not configured", nil)
		return
	}
	if params.Error != nil && *params.Error != "" {
		http.Redirect(w, r, "/login?error="+url.QueryEscape(*params.Error), http.StatusSeeOther)
		return
	}
	c, err := r.Cookie(stateCookie)
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "oauth state mismatch", nil)
		return
	}
	state, redirect := splitStateCookie(r, c.Value)
	if params.State == nil || state == "" || state != *params.State {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "oauth state mismatch", nil)
		return
	}
	if params.Code == nil || *params.Code == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "missing authorization code", nil)
		return
	}
	http.SetCookie(w, &http.Cookie{Name: stateCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})

	u, err := h.Google.FetchUser(r.Context(), *params.Code)
	if err != nil {
		if IsUnauthorized(err) {
			h.fail(w, r, err)
			return
		}
		h.log.ErrorContext(r.Context(), "google sign-in failed", slog.Any("err", err))
		writeError(w, http.StatusBadGateway, "UPSTREAM", "google sign-in failed", nil)
		return
	}
	token, err := h.Auth.IssueToken(u)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	setTokenCookie(w, token, h.Auth.TTL(), h.secure)
	h.log.InfoContext(r.Context(), "signed in", slog.String("user_id", u.ID), slog.String("provider", u.Provider))
	http.Redirect(w, r, redirect, http.StatusSeeOther)
}

func (h *Handler) SubmitPlant(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "sign in to continue", nil)
		return
	}
	var in model.SubmitPlantInput
	if !decodeJSON(w, r, &in) {
		return
	}
	p, err := h.Svc.SubmitPlant(r.Context(), u, in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, toAPIPlant(p))
}

// Health reports liveness and the catalog size.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "plants": h.Svc.Catalog.Len()})
}

func (h *Handler) allowLogin(w http.ResponseWriter, r *http.Request) bool {
	if h.Limiter == nil || h.Limiter.Allow(clientIP(r)) {
		return true
	}
	writeError(w, http.StatusTooManyRequests, "RATE_LIMITED", "too many sign-in attempts, try again shortly", nil)
	return false
}

func (h *Handler) startSession(w http.ResponseWriter, r *http.Request, status int, u model.User, redirect string) {
	token, err := h.Auth.IssueToken(u)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	setTokenCookie(w, token, h.Auth.TTL(), h.secure)
	h.log.InfoContext(r.Context(), "signed in", slog.String("user_id", u.ID), slog.String("provider", u.Provider))
	writeJSON(w, status, api.Session{User: toAPIUser(u), Redirect: redirect})
}

// resolveCallback picks where to send a user after signing in. Relative paths
// and absolute URLs on the request's own origin are kept; the login page and
// anything else land on afterLoginPath.
func resolveCallback(r *http.Request, raw string) string {
	origin := requestOrigin(r)
	target := afterLoginPath
	switch {
	case raw == "":
	case strings.HasPrefix(raw, "/") && !strings.HasPrefix(raw, "//") && !strings.HasPrefix(raw, "/\\"):
		target = raw
	default:
		u, err := url.Parse(raw)
		if err == nil && u.Scheme != "" && strings.EqualFold(u.Scheme+"://"+u.Host, origin) {
			target = u.RequestURI()
			if u.Fragment != "" {
				target += "#" + u.EscapedFragment()
			}
		}
	}
	if target == "/login" {
		return afterLoginPath
	}
	return target
}

func requestOrigin(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	} else if p := r.Header.Get("X-Forwarded-Proto"); p != "" {
		scheme = p
	}
	return scheme + "://" + r.Host
}

// splitStateCookie separates the OAuth state from the callback carried next
// to it. A missing or unreadable callback means afterLoginPath.
func splitStateCookie(r *http.Request, value string) (state, redirect string) {
	state, enc, ok := strings.Cut(value, ".")
	if !ok {
		return state, afterLoginPath
	}
	b, err := base64.RawURLEncoding.DecodeString(enc)
	if err != nil {
		return state, afterLoginPath
	}
	return state, resolveCallback(r, string(b))
}

func toAPIPlant(p model.Plant) api.Plant {
	return api.Plant{
		Id:               p.ID,
		Name:             p.Name,
		Description:      p.Description,
		Price:            p.Price,
		Category:         string(p.Category),
		Difficulty:       string(p.Difficulty),
		Light:            p.Light,
		Water:            p.Water,
		Size:             string(p.Size),
		CareInstructions: nonNil(p.CareInstructions),
		Benefits:         nonNil(p.Benefits),
		Image:            p.Image,
		InStock:          p.InStock,
		Featured:         p.Featured,
	}
}

func toAPIPlants(ps []model.Plant) []api.Plant {
	out := make([]api.Plant, 0, len(ps))
	for _, p := range ps {
		out = append(out, toAPIPlant(p))
	}
	return out
}

func toAPIUser(u model.User) api.User {
	return api.User{Id: u.ID, Email: u.Email, Name: u.Name, Image: u.Image, Provider: u.Provider}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
