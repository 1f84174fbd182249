package genai

import (
	"fmt"
	"strings"
)

// generateInstruction is the system instruction for turning structured user
// data into a complete prompt. The output language follows the input, but
// the instruction itself is Spanish like the product's audience.
func generateInstruction(modelHint string) string {
	model := strings.TrimSpace(modelHint)
	if model == "" {
		model = engineFlash
	}
	sb := &strings.Builder{}
	sb.WriteString("Actúa como un ingeniero de prompts de clase mundial. Transforma los datos estructurados del usuario en un prompt completo, extenso, detallado y potente.\n\n")
	fmt.Fprintf(sb, "OPTIMIZACIÓN PARA MODELO DESTINO: el usuario usará este prompt con %q. Ajusta vocabulario, estructura y parámetros técnicos a ese modelo (por ejemplo '--ar' o '--v' para generadores de imagen; razonamiento y contexto lógico para modelos de texto).\n\n", model)
	sb.WriteString("Proceso interno: 1) analiza el tipo de IA, la intención central y los elementos clave; 2) expande cada sección con detalles creativos y técnicos que enriquezcan la petición; 3) ensambla un prompt nuevo, mucho más rico, optimizado para el modelo destino.\n\n")
	sb.WriteString("Reglas de salida: respeta y profundiza el objetivo original sin cambiarlo; añade contexto, especificaciones técnicas, estilo y tono ultra específicos, y restricciones o negative prompts cuando el modelo lo admita; sintetiza todo en un único prompt coherente y bien desarrollado.\n")
	sb.WriteString("Tu respuesta debe ser ÚNICA Y EXCLUSIVAMENTE el texto del prompt final. Sin explicaciones ni notas.")
	return sb.String()
}

// enhanceInstruction is the system instruction for refining an already
// generated prompt one level further.
func enhanceInstruction(modelHint string) string {
	model := strings.TrimSpace(modelHint)
	if model == "" {
		model = engineFlash
	}
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "Eres un refinador de prompts de IA de élite. Recibirás un prompt que ya es de alta calidad; tu única misión es hacerlo excepcional para el modelo %q.\n\n", model)
	sb.WriteString("Proceso interno: deconstruye el prompt existente, identifica oportunidades de más emoción o precisión técnica para el modelo destino y reconstrúyelo desde cero incorporando las mejoras.\n\n")
	sb.WriteString("Reglas de salida: añade complejidad y matices, incrementa la especificidad técnica y usa el lenguaje y los parámetros ideales para ese modelo.\n")
	sb.WriteString("Tu respuesta debe ser ÚNICA Y EXCLUSIVAMENTE el texto del prompt mejorado. Sin preámbulos.")
	return sb.String()
}
