// Package api holds the HTTP contract of the plant catalog: wire types, the
// ServerInterface implemented by the adapter layer and the chi wiring that
// binds path and query parameters.
package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// Plant defines model for Plant.
type Plant struct {
	Id               int      `json:"id"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Price            float64  `json:"price"`
	Category         string   `json:"category"`
	Difficulty       string   `json:"difficulty"`
	Light            string   `json:"light"`
	Water            string   `json:"water"`
	Size             string   `json:"size"`
	CareInstructions []string `json:"careInstructions"`
	Benefits         []string `json:"benefits"`
	Image            string   `json:"image"`
	InStock          bool     `json:"inStock"`
	Featured         bool     `json:"featured"`
}

// PlantQuery echoes the query a plant list was computed for.
type PlantQuery struct {
	Q          string `json:"q"`
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
	Sort       string `json:"sort"`
}

// PlantList defines model for PlantList.
type PlantList struct {
	Items      []Plant    `json:"items"`
	TotalCount int        `json:"totalCount"`
	MatchCount int        `json:"matchCount"`
	Query      PlantQuery `json:"query"`
}

// SortOption defines model for SortOption.
type SortOption struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Facets defines model for Facets.
type Facets struct {
	Categories   []string     `json:"categories"`
	Difficulties []string     `json:"difficulties"`
	Sizes        []string     `json:"sizes"`
	SortOptions  []SortOption `json:"sortOptions"`
}

// User defines model for User.
type User struct {
	Id       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Image    string `json:"image,omitempty"`
	Provider string `json:"provider"`
}

// Session defines model for Session.
type Session struct {
	User     User   `json:"user"`
	Redirect string `json:"redirect,omitempty"`
}

// LoginRequest defines model for LoginRequest.
type LoginRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	CallbackUrl string `json:"callbackUrl,omitempty"`
}

// RegisterRequest defines model for RegisterRequest.
type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	CallbackUrl     string `json:"callbackUrl,omitempty"`
}

// ListPlantsParams defines parameters for ListPlants.
type ListPlantsParams struct {
	// Q free-text search over name and description.
	Q          *string `form:"q,omitempty" json:"q,omitempty"`
	Category   *string `form:"category,omitempty" json:"category,omitempty"`
	Difficulty *string `form:"difficulty,omitempty" json:"difficulty,omitempty"`
	Sort       *string `form:"sort,omitempty" json:"sort,omitempty"`
}

// GoogleSignInParams defines parameters for GoogleSignIn.
type GoogleSignInParams struct {
	// CallbackUrl is where to land after signing in.
	CallbackUrl *string `form:"callbackUrl,omitempty" json:"callbackUrl,omitempty"`
}

// GoogleCallbackParams defines parameters for GoogleCallback.
type GoogleCallbackParams struct {
	Code  *string `form:"code,omitempty" json:"code,omitempty"`
	State *string `form:"state,omitempty" json:"state,omitempty"`
	Error *string `form:"error,omitempty" json:"error,omitempty"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /api/v1/plants)
	ListPlants(w http.ResponseWriter, r *http.Request, params ListPlantsParams)
	// (GET /api/v1/plants/featured)
	ListFeaturedPlants(w http.ResponseWriter, r *http.Request)
	// (GET /api/v1/plants/{id})
	GetPlantById(w http.ResponseWriter, r *http.Request, id int)
	// (GET /api/v1/facets)
	GetFacets(w http.ResponseWriter, r *http.Request)
	// (POST /api/v1/auth/login)
	Login(w http.ResponseWriter, r *http.Request)
	// (POST /api/v1/auth/register)
	Register(w http.ResponseWriter, r *http.Request)
	// (POST /api/v1/auth/logout)
	Logout(w http.ResponseWriter, r *http.Request)
	// (GET /api/v1/auth/session)
	GetSession(w http.ResponseWriter, r *http.Request)
	// (GET /api/v1/auth/google)
	GoogleSignIn(w http.ResponseWriter, r *http.Request, params GoogleSignInParams)
	// (GET /api/v1/auth/google/callback)
	GoogleCallback(w http.ResponseWriter, r *http.Request, params GoogleCallbackParams)
	// (POST /api/v1/dashboard/products)
	SubmitPlant(w http.ResponseWriter, r *http.Request)
}

type MiddlewareFunc func(http.Handler) http.Handler

// ServerInterfaceWrapper converts contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler            ServerInterface
	HandlerMiddlewares []MiddlewareFunc
	// AuthMiddlewares run only in front of operations that need a session.
	AuthMiddlewares  []MiddlewareFunc
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

func (siw *ServerInterfaceWrapper) ListPlants(w http.ResponseWriter, r *http.Request) {
	var err error
	var params ListPlantsParams

	err = runtime.BindQueryParameter("form", true, false, "q", r.URL.Query(), &params.Q)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "q", Err: err})
		return
	}
	err = runtime.BindQueryParameter("form", true, false, "category", r.URL.Query(), &params.Category)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "category", Err: err})
		return
	}
	err = runtime.BindQueryParameter("form", true, false, "difficulty", r.URL.Query(), &params.Difficulty)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "difficulty", Err: err})
		return
	}
	err = runtime.BindQueryParameter("form", true, false, "sort", r.URL.Query(), &params.Sort)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "sort", Err: err})
		return
	}

	siw.serve(w, r, nil, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.ListPlants(w, r, params)
	})
}

func (siw *ServerInterfaceWrapper) ListFeaturedPlants(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, nil, siw.Handler.ListFeaturedPlants)
}

func (siw *ServerInterfaceWrapper) GetPlantById(w http.ResponseWriter, r *http.Request) {
	var id int
	err := runtime.BindStyledParameterWithLocation("simple", false, "id", runtime.ParamLocationPath, chi.URLParam(r, "id"), &id)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "id", Err: err})
		return
	}

	siw.serve(w, r, nil, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetPlantById(w, r, id)
	})
}

func (siw *ServerInterfaceWrapper) GetFacets(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, nil, siw.Handler.GetFacets)
}

func (siw *ServerInterfaceWrapper) Login(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, nil, siw.Handler.Login)
}

func (siw *ServerInterfaceWrapper) Register(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, nil, siw.Handler.Register)
}

func (siw *ServerInterfaceWrapper) Logout(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, nil, siw.Handler.Logout)
}

func (siw *ServerInterfaceWrapper) GetSession(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, nil, siw.Handler.GetSession)
}

func (siw *ServerInterfaceWrapper) GoogleSignIn(w http.ResponseWriter, r *http.Request) {
	var params GoogleSignInParams

	err := runtime.BindQueryParameter("form", true, false, "callbackUrl", r.URL.Query(), &params.CallbackUrl)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "callbackUrl", Err: err})
		return
	}

	siw.serve(w, r, nil, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GoogleSignIn(w, r, params)
	})
}

func (siw *ServerInterfaceWrapper) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	var err error
	var params GoogleCallbackParams

	err = runtime.BindQueryParameter("form", true, false, "code", r.URL.Query(), &params.Code)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "code", Err: err})
		return
	}
	err = runtime.BindQueryParameter("form", true, false, "state", r.URL.Query(), &params.State)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "state", Err: err})
		return
	}
	err = runtime.BindQueryParameter("form", true, false, "error", r.URL.Query(), &params.Error)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "error", Err: err})
		return
	}

	siw.serve(w, r, nil, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GoogleCallback(w, r, params)
	})
}

func (siw *ServerInterfaceWrapper) SubmitPlant(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.AuthMiddlewares, siw.Handler.SubmitPlant)
}

// serve runs h behind the operation's own middlewares, then the shared ones.
func (siw *ServerInterfaceWrapper) serve(w http.ResponseWriter, r *http.Request, own []MiddlewareFunc, h http.HandlerFunc) {
	handler := http.Handler(h)
	for _, middleware := range own {
		handler = middleware(handler)
	}
	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}
	handler.ServeHTTP(w, r)
}

type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error {
	return e.Err
}

// Handler creates http.Handler with the plant API routes.
func Handler(si ServerInterface) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{})
}

type ChiServerOptions struct {
	BaseURL          string
	BaseRouter       chi.Router
	Middlewares      []MiddlewareFunc
	AuthMiddlewares  []MiddlewareFunc
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// HandlerFromMux registers the plant API routes on the provided mux.
func HandlerFromMux(si ServerInterface, r chi.Router) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{
		BaseRouter: r,
	})
}

// HandlerWithOptions creates http.Handler with additional options
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter

	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}
	wrapper := ServerInterfaceWrapper{
		Handler:            si,
		HandlerMiddlewares: options.Middlewares,
		AuthMiddlewares:    options.AuthMiddlewares,
		ErrorHandlerFunc:   options.ErrorHandlerFunc,
	}

	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/api/v1/plants", wrapper.ListPlants)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/api/v1/plants/featured", wrapper.ListFeaturedPlants)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/api/v1/plants/{id}", wrapper.GetPlantById)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/api/v1/facets", wrapper.GetFacets)
	})
	r.Group(func(r chi.Router) {
		r.Post(options.BaseURL+"/api/v1/auth/login", wrapper.Login)
	})
	r.Group(func(r chi.Router) {
		r.Post(options.BaseURL+"/api/v1/auth/register", wrapper.Register)
	})
	r.Group(func(r chi.Router) {
		r.Post(options.BaseURL+"/api/v1/auth/logout", wrapper.Logout)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/api/v1/auth/session", wrapper.GetSession)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/api/v1/auth/google", wrapper.GoogleSignIn)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/api/v1/auth/google/callback", wrapper.GoogleCallback)
	})
	r.Group(func(r chi.Router) {
		r.Post(options.BaseURL+"/api/v1/dashboard/products", wrapper.SubmitPlant)
	})

	return r
}
