package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeMissingPostalCode Code = "MISSING_POSTAL_CODE"
	CodeMissingItems      Code = "MISSING_ITEMS"
	CodeNoSKUProvided     Code = "NO_SKU_PROVIDED"
	CodeEmptySKUSet       Code = "EMPTY_SKU_SET"
	CodeSKUNotFound       Code = "SKU_NOT_FOUND"
	CodeUpstreamBlocked   Code = "UPSTREAM_BLOCKED"
	CodeCatalogError      Code = "CATALOG_ERROR"
	CodeQuoteError        Code = "QUOTE_ERROR"
	CodeQuoteTimeout      Code = "QUOTE_TIMEOUT"
	CodeValidation        Code = "VALIDATION_ERROR"
	CodeInternal          Code = "INTERNAL_ERROR"
)

// Metadata carries the user-facing mapping for each code. WireCode is the
// value written in the response envelope's "error" field; the storefront
// script matches on these strings, so they stay in Portuguese.
type Metadata struct {
	HTTPStatus    int
	WireCode      string
	PublicMessage string
}

var metadataByCode = map[Code]Metadata{
	CodeMissingPostalCode: {
		HTTPStatus:    http.StatusBadRequest,
		WireCode:      "postal_code_ausente",
		PublicMessage: "Informe CEP",
	},
	CodeMissingItems: {
		HTTPStatus:    http.StatusBadRequest,
		WireCode:      "itens_ausentes",
		PublicMessage: "Envie items[]",
	},
	CodeNoSKUProvided: {
		HTTPStatus:    http.StatusBadRequest,
		WireCode:      "nenhum_sku_informado",
		PublicMessage: "Envie 'sku_id_yampi' numérico ou 'sku' string em cada item.",
	},
	CodeEmptySKUSet: {
		HTTPStatus:    http.StatusBadRequest,
		WireCode:      "skus_ids_ausentes",
		PublicMessage: "Não foi possível resolver IDs a partir dos itens enviados.",
	},
	CodeSKUNotFound: {
		HTTPStatus:    http.StatusUnprocessableEntity,
		WireCode:      "sku_nao_encontrado_na_yampi",
		PublicMessage: "SKUs não encontrados",
	},
	CodeUpstreamBlocked: {
		HTTPStatus: http.StatusBadGateway,
		WireCode:   "yampi_cloudflare_block",
		PublicMessage: "A Yampi bloqueou a chamada (Cloudflare 1020/403). " +
			"Solicite whitelist do IP do servidor ou use infraestrutura localizada no BR.",
	},
	CodeCatalogError: {
		HTTPStatus:    http.StatusBadGateway,
		WireCode:      "yampi_api_error",
		PublicMessage: "Falha ao buscar produtos na Yampi",
	},
	CodeQuoteError: {
		HTTPStatus:    http.StatusBadGateway,
		WireCode:      "yampi_api_error",
		PublicMessage: "Falha ao cotar frete",
	},
	CodeQuoteTimeout: {
		HTTPStatus:    http.StatusBadGateway,
		WireCode:      "yampi_api_error",
		PublicMessage: "Tempo esgotado ao cotar frete",
	},
	CodeValidation: {
		HTTPStatus:    http.StatusBadRequest,
		WireCode:      "requisicao_invalida",
		PublicMessage: "Requisição inválida",
	},
	CodeInternal: {
		HTTPStatus:    http.StatusInternalServerError,
		WireCode:      "falha_no_proxy",
		PublicMessage: "Falha interna no proxy",
	},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}
