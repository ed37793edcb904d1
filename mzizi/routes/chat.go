package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"mzizi/mzizi/config"
	"mzizi/mzizi/controllers"
	"mzizi/mzizi/middlewares"
	"mzizi/mzizi/sessions"
	"mzizi/mzizi/utils/types"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

func statusFor(err error) int {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func ChatRoutes(ctrl *controllers.ChatController, cfg config.Config) chi.Router {
	r := chi.NewRouter()
	r.Group(func(gr chi.Router) {
		gr.Use(middlewares.AuthMiddleware(cfg))

		// GET /chat/state : lifecycle state, active session, pending input
		gr.Get("/state", handleJSON(func(r *http.Request) (any, int, error) {
			profileID := r.Context().Value(middlewares.ProfileIDKey).(string)
			st, err := ctrl.State(r.Context(), profileID)
			if err != nil {
				return nil, statusFor(err), err
			}
			return st, http.StatusOK, nil
		}))

		// POST /chat/new : open a session (tool context optional)
		gr.Post("/new", handleJSON(func(r *http.Request) (any, int, error) {
			profileID := r.Context().Value(middlewares.ProfileIDKey).(string)
			var req types.NewChatRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				return nil, http.StatusBadRequest, err
			}
			sess, err := ctrl.NewChat(r.Context(), profileID, req.Context)
			if err != nil {
				return nil, statusFor(err), err
			}
			return sess, http.StatusOK, nil
		}))

		// POST /chat/quick-ask : stage a delivered dashboard prompt
		gr.Post("/quick-ask", handleJSON(func(r *http.Request) (any, int, error) {
			profileID := r.Context().Value(middlewares.ProfileIDKey).(string)
			var req types.QuickAskRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				return nil, http.StatusBadRequest, err
			}
			sess, fired, err := ctrl.QuickAsk(r.Context(), profileID,
				sessions.QuickAsk{Token: req.Token, Prompt: req.Prompt})
			if err != nil {
				return nil, statusFor(err), err
			}
			return map[string]any{"session": sess, "fired": fired}, http.StatusOK, nil
		}))

		// POST /chat/send : one advisor exchange
		gr.Post("/send", handleJSON(func(r *http.Request) (any, int, error) {
			profileID := r.Context().Value(middlewares.ProfileIDKey).(string)
			var req types.SendRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				return nil, http.StatusBadRequest, err
			}
			msg, ok, err := ctrl.Send(r.Context(), profileID, req.SessionID, req.Text)
			if err != nil {
				return nil, statusFor(err), err
			}
			if !ok {
				return nil, http.StatusNotFound, errors.New("session not found")
			}
			return msg, http.StatusOK, nil
		}))

		// POST /chat/branch : fork a session at a message
		gr.Post("/branch", handleJSON(func(r *http.Request) (any, int, error) {
			profileID := r.Context().Value(middlewares.ProfileIDKey).(string)
			var req types.BranchRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				return nil, http.StatusBadRequest, err
			}
			sess, ok, err := ctrl.Branch(r.Context(), profileID, req.SessionID, req.MessageID)
			if err != nil {
				return nil, statusFor(err), err
			}
			if !ok {
				return nil, http.StatusNotFound, errors.New("session or message not found")
			}
			return sess, http.StatusOK, nil
		}))

		// GET /chat/sessions : list all sessions (threads)
		gr.Get("/sessions", handleJSON(func(r *http.Request) (any, int, error) {
			profileID := r.Context().Value(middlewares.ProfileIDKey).(string)
			list, err := ctrl.Sessions(r.Context(), profileID)
			if err != nil {
				return nil, statusFor(err), err
			}
			return list, http.StatusOK, nil
		}))

		// GET /chat/session/{session_id}/messages : one session's timeline
		gr.Get("/session/{session_id}/messages", handleJSON(func(r *http.Request) (any, int, error) {
			profileID := r.Context().Value(middlewares.ProfileIDKey).(string)
			sessionID := chi.URLParam(r, "session_id")
			msgs, ok, err := ctrl.Messages(r.Context(), profileID, sessionID)
			if err != nil {
				return nil, statusFor(err), err
			}
			if !ok {
				return nil, http.StatusNotFound, errors.New("session not found")
			}
			return msgs, http.StatusOK, nil
		}))

		// POST /chat/session/{session_id}/select : switch the active session
		gr.Post("/session/{session_id}/select", handleJSON(func(r *http.Request) (any, int, error) {
			profileID := r.Context().Value(middlewares.ProfileIDKey).(string)
			sessionID := chi.URLParam(r, "session_id")
			ok, err := ctrl.Select(r.Context(), profileID, sessionID)
			if err != nil {
				return nil, statusFor(err), err
			}
			if !ok {
				return nil, http.StatusNotFound, errors.New("session not found")
			}
			return map[string]string{"active_session_id": sessionID}, http.StatusOK, nil
		}))

		// DELETE /chat/session/{session_id} : delete one session (thread)
		gr.Delete("/session/{session_id}", func(w http.ResponseWriter, r *http.Request) {
			profileID := r.Context().Value(middlewares.ProfileIDKey).(string)
			sessionID := chi.URLParam(r, "session_id")
			if err := ctrl.DeleteSession(r.Context(), profileID, sessionID); err != nil {
				http.Error(w, err.Error(), statusFor(err))
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})

		// PUT /chat/session/{session_id}/message/{message_id} : edit text in place
		gr.Put("/session/{session_id}/message/{message_id}", handleJSON(func(r *http.Request) (any, int, error) {
			profileID := r.Context().Value(middlewares.ProfileIDKey).(string)
			sessionID := chi.URLParam(r, "session_id")
			messageID := chi.URLParam(r, "message_id")
			var req types.EditMessageRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				return nil, http.StatusBadRequest, err
			}
			if err := ctrl.EditMessage(r.Context(), profileID, sessionID, messageID, req.Text); err != nil {
				return nil, statusFor(err), err
			}
			return map[string]string{"status": "ok"}, http.StatusOK, nil
		}))

		// DELETE /chat/session/{session_id}/message/{message_id}
		gr.Delete("/session/{session_id}/message/{message_id}", func(w http.ResponseWriter, r *http.Request) {
			profileID := r.Context().Value(middlewares.ProfileIDKey).(string)
			sessionID := chi.URLParam(r, "session_id")
			messageID := chi.URLParam(r, "message_id")
			if err := ctrl.DeleteMessage(r.Context(), profileID, sessionID, messageID); err != nil {
				http.Error(w, err.Error(), statusFor(err))
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})
	})

	// websocket exchange: first frame carries the token and the send request,
	// reply frames carry the appended model message.
	r.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusInternalError, "internal error")

		ctx := r.Context()
		typ, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		if typ != websocket.MessageText {
			conn.Close(websocket.StatusUnsupportedData, "unsupported data")
			return
		}
		var input types.WSExchange
		if err := json.Unmarshal(data, &input); err != nil {
			conn.Write(ctx, websocket.MessageText, []byte(`{"error":"invalid json"}`))
			return
		}

		token, err := jwt.Parse(input.Token, func(token *jwt.Token) (interface{}, error) {
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			conn.Write(ctx, websocket.MessageText, []byte(`{"error":"invalid token"}`))
			conn.Close(websocket.StatusPolicyViolation, "invalid token")
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			conn.Write(ctx, websocket.MessageText, []byte(`{"error":"invalid claims"}`))
			conn.Close(websocket.StatusPolicyViolation, "invalid claims")
			return
		}
		profileID, ok := claims["profile_id"].(string)
		if !ok || profileID == "" {
			conn.Write(ctx, websocket.MessageText, []byte(`{"error":"invalid profile_id"}`))
			conn.Close(websocket.StatusPolicyViolation, "invalid profile_id")
			return
		}

		msg, found, err := ctrl.Send(ctx, profileID, input.Send.SessionID, input.Send.Text)
		if err != nil {
			conn.Write(ctx, websocket.MessageText, []byte(`{"error":"`+err.Error()+`"}`))
			conn.Close(websocket.StatusInternalError, "exchange error")
			return
		}
		if !found {
			conn.Write(ctx, websocket.MessageText, []byte(`{"error":"session not found"}`))
			conn.Close(websocket.StatusNormalClosure, "")
			return
		}
		payload, _ := json.Marshal(msg)
		if err := conn.Write(ctx, websocket.MessageText, payload); err != nil {
			return
		}
		conn.Close(websocket.StatusNormalClosure, "")
	})
	return r
}
