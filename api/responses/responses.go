package responses

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	pkgerrors "github.com/sonhosdeninar/shipping-proxy/pkg/errors"
	"github.com/sonhosdeninar/shipping-proxy/pkg/logger"
)

// ErrorEnvelope is the wire shape the storefront script matches on.
type ErrorEnvelope struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode response","err":"%v"}`, err)
	}
}

// WriteError maps any pipeline error to the status and envelope of its
// error code, logging the full chain server-side.
func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}

	meta := pkgerrors.MetadataFor(typed.Code())

	detail := typed.Message()
	if detail == "" {
		detail = meta.PublicMessage
	}

	if logg != nil {
		fields := map[string]any{
			"error":      err.Error(),
			"error_code": string(typed.Code()),
		}
		if details := typed.Details(); details != nil {
			fields["error_details"] = details
		}
		logg.Error(logg.WithFields(ctx, fields), "request.error", err)
	}

	WriteJSON(w, meta.HTTPStatus, ErrorEnvelope{
		Error:  meta.WireCode,
		Detail: detail,
	})
}
