package routes

import (
	"encoding/json"
	"net/http"

	"mzizi/mzizi/config"
	"mzizi/mzizi/controllers"
	"mzizi/mzizi/middlewares"
	"mzizi/mzizi/types"

	"github.com/go-chi/chi/v5"
)

// generic wrapper to reduce boilerplate
func handleJSON(handler func(r *http.Request) (any, int, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, status, err := handler(r)
		if err != nil {
			http.Error(w, err.Error(), status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(res)
	}
}

func ProfileRoutes(ctrl *controllers.ProfileController, cfg config.Config) chi.Router {
	r := chi.NewRouter()

	r.Group(func(gr chi.Router) {
		gr.Use(middlewares.AuthMiddleware(cfg))

		gr.Get("/me", handleJSON(func(r *http.Request) (any, int, error) {
			id, ok := r.Context().Value(middlewares.ProfileIDKey).(string)
			if !ok {
				return nil, http.StatusUnauthorized, nil
			}
			profile, err := ctrl.GetProfile(r.Context(), id)
			if err != nil {
				return nil, statusFor(err), err
			}
			return profile, http.StatusOK, nil
		}))

		gr.Put("/me", handleJSON(func(r *http.Request) (any, int, error) {
			id, ok := r.Context().Value(middlewares.ProfileIDKey).(string)
			if !ok {
				return nil, http.StatusUnauthorized, nil
			}
			var req types.BusinessProfile
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				return nil, http.StatusBadRequest, err
			}
			req.ID = id
			profile, err := ctrl.UpdateProfile(r.Context(), req)
			if err != nil {
				return nil, statusFor(err), err
			}
			return profile, http.StatusOK, nil
		}))

		gr.Get("/fetch/{profile_id}", handleJSON(func(r *http.Request) (any, int, error) {
			id := chi.URLParam(r, "profile_id")
			profile, err := ctrl.GetProfile(r.Context(), id)
			if err != nil {
				return nil, statusFor(err), err
			}
			return profile, http.StatusOK, nil
		}))

		gr.Get("/fetch", handleJSON(func(r *http.Request) (any, int, error) {
			profiles, err := ctrl.ListProfiles(r.Context())
			if err != nil {
				return nil, statusFor(err), err
			}
			return profiles, http.StatusOK, nil
		}))
	})

	r.Post("/create", handleJSON(func(r *http.Request) (any, int, error) {
		var req types.BusinessProfile
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, http.StatusBadRequest, err
		}
		profile, err := ctrl.CreateProfile(r.Context(), req)
		if err != nil {
			return nil, http.StatusInternalServerError, err
		}
		return profile, http.StatusOK, nil
	}))

	return r
}
