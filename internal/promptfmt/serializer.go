// Package promptfmt turns a PromptOptions record into the structured text
// block handed to the generation service. Section order and omission of
// empty fields are part of the output contract.
package promptfmt

import (
	"fmt"
	"strings"

	"promptforge/internal/domain"
)

type section struct {
	title string
	value string
}

// Build serializes options into the structured input block. The mandatory
// main field of the active variant must be non-empty; otherwise a
// *domain.ValidationError is returned and nothing else happens.
func Build(opts domain.PromptOptions) (string, error) {
	if strings.TrimSpace(opts.Title()) == "" {
		return "", &domain.ValidationError{Field: domain.MainField(opts.Type)}
	}

	sections, err := orderedSections(opts)
	if err != nil {
		return "", err
	}

	sb := &strings.Builder{}
	fmt.Fprintf(sb, "# TIPO DE PROMPT: %s\n\n", strings.ToUpper(string(opts.Type)))
	sb.WriteString("# DATOS ESTRUCTURADOS DEL USUARIO:\n")
	for _, s := range sections {
		writeSection(sb, s.title, s.value)
	}
	return strings.TrimSpace(sb.String()), nil
}

// writeSection appends one titled block, skipping fields that are empty or
// whitespace-only so no bare headers ever appear in the output.
func writeSection(sb *strings.Builder, title, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	fmt.Fprintf(sb, "\n## %s\n%s\n", strings.ToUpper(title), value)
}

// orderedSections lists the variant's fields in their fixed output order.
// The switch is exhaustive over domain.Kinds; a new kind must be added here
// before it can serialize.
func orderedSections(opts domain.PromptOptions) ([]section, error) {
	switch opts.Type {
	case domain.KindText:
		t := opts.Text
		return []section{
			{"Objetivo Principal", t.Objetivo},
			{"Rol de la IA", t.Rol},
			{"Contexto", t.Contexto},
			{"Formato de Salida", t.Formato},
			{"Tono", t.Tono},
		}, nil
	case domain.KindImage:
		i := opts.Image
		return []section{
			{"Descripción Principal", i.Descripcion},
			{"Estilo Artístico", i.Estilo},
			{"Composición y Encuadre", i.Composicion},
			{"Iluminación", i.Iluminacion},
			{"Parámetros Adicionales", i.Extras},
		}, nil
	case domain.KindVideo:
		v := opts.Video
		return []section{
			{"Escena Principal", v.Escena},
			{"Acción Principal", v.Accion},
			{"Estilo Visual", v.EstiloVisual},
			{"Movimiento de Cámara", v.Camara},
			{"Detalles Adicionales", v.Extras},
		}, nil
	case domain.KindAudio:
		a := opts.Audio
		return []section{
			{"Tipo de Sonido/Música", a.TipoSonido},
			{"Género/Estilo", a.Genero},
			{"Emoción y Atmósfera", a.Atmosfera},
			{"Instrumentos/Voces/Efectos", a.Instrumentos},
			{"Uso Previsto", a.Uso},
		}, nil
	case domain.KindCode:
		c := opts.Code
		return []section{
			{"Lenguaje de Programación", c.Lenguaje},
			{"Tarea a Realizar", c.Tarea},
			{"Requisitos y Restricciones", c.Requisitos},
			{"Ejemplo de Entrada/Salida", c.Ejemplo},
			{"Nivel de Código Deseado", c.Nivel},
		}, nil
	}
	return nil, fmt.Errorf("unsupported prompt kind %q", opts.Type)
}
