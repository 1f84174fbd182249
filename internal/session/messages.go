package session

import (
	"errors"
	"fmt"

	"promptforge/internal/domain"
)

// Locales supported by the user-facing message catalog. Spanish is the
// product's home language; anything else falls back to English.
const (
	LocaleES = "es"
	LocaleEN = "en"
)

var messagesES = map[string]string{
	"validation": "El campo principal de la pestaña actual no puede estar vacío.",
	"credential": "La clave API no está configurada. Configúrala antes de generar un prompt.",
	"auth":       "La clave API proporcionada no es válida. Por favor, asegúrate de que esté configurada correctamente.",
	"safety":     "Tu petición fue bloqueada por las políticas de seguridad del modelo. Por favor, reformula tu prompt.",
	"quota":      "Se ha excedido la cuota de la API. Revisa tu plan de facturación.",
	"billing":    "Hay un problema con la facturación de tu cuenta. Por favor, verifica que esté activa.",
	"overload":   "El servicio de IA está sobrecargado. Por favor, espera un momento y vuelve a intentarlo.",
	"unknown":    "El servicio de IA devolvió un error: %s",
	"connect":    "No se pudo conectar con el servicio de IA. Inténtalo de nuevo más tarde.",
}

var messagesEN = map[string]string{
	"validation": "The main field of the current tab cannot be empty.",
	"credential": "The API key is not configured. Set it up before generating a prompt.",
	"auth":       "The provided API key is not valid. Please make sure it is configured correctly.",
	"safety":     "Your request was blocked by the model's safety policies. Please rephrase your prompt.",
	"quota":      "The API quota has been exceeded. Check your billing plan.",
	"billing":    "There is a problem with your account billing. Please verify that it is active.",
	"overload":   "The AI service is overloaded. Please wait a moment and try again.",
	"unknown":    "The AI service returned an error: %s",
	"connect":    "Could not reach the AI service. Please try again later.",
}

// UserMessage maps an error from the core taxonomy to the fixed localized
// template for the requested locale. Unknown upstream failures keep the raw
// detail for diagnosability.
func UserMessage(locale string, err error) string {
	catalog := messagesEN
	if locale == LocaleES {
		catalog = messagesES
	}

	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		return catalog["validation"]
	}
	if errors.Is(err, domain.ErrMissingCredential) {
		return catalog["credential"]
	}

	var upstream *domain.UpstreamError
	if errors.As(err, &upstream) {
		switch upstream.Category {
		case domain.UpstreamAuth:
			return catalog["auth"]
		case domain.UpstreamSafety:
			return catalog["safety"]
		case domain.UpstreamQuota:
			return catalog["quota"]
		case domain.UpstreamBilling:
			return catalog["billing"]
		case domain.UpstreamOverload:
			return catalog["overload"]
		default:
			if upstream.Detail == "" {
				return catalog["connect"]
			}
			return fmt.Sprintf(catalog["unknown"], upstream.Detail)
		}
	}
	return fmt.Sprintf(catalog["unknown"], err.Error())
}
