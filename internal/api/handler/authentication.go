package handler

import (
	"net/http"

	"github.com/vfg2006/sales-risk-analytics/internal/domain"
	"github.com/vfg2006/sales-risk-analytics/internal/usecases/authenticating"
	"github.com/vfg2006/sales-risk-analytics/pkg/apiErrors"
	"github.com/vfg2006/sales-risk-analytics/pkg/log"
)

func Login(service authenticating.Authenticator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req domain.LoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if err := validate.Struct(req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Usuário e senha são obrigatórios", validationDetails(err))
			return
		}

		response, err := service.LoginUser(req.Username, req.Password)
		if err != nil {
			handleLoginError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, response)
	})
}

// handleLoginError traduz o erro de autenticação para o código da API
func handleLoginError(w http.ResponseWriter, r *http.Request, err error) {
	code := authenticating.CodeOf(err)
	if code == apiErrors.ErrInternalServer {
		log.ForContext(r.Context()).WithError(err).Error("login: erro interno")
		apiErrors.WriteError(w, code, "Erro interno ao realizar login", nil)
		return
	}

	apiErrors.WriteError(w, code, err.Error(), nil)
}
