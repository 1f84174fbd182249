package domain

import (
	"fmt"
	"strings"
)

// Field names one editable input of a prompt variant. The values match the
// JSON keys so clients address fields by their wire name.
type Field string

const (
	FieldObjetivo     Field = "objetivo"
	FieldRol          Field = "rol"
	FieldContexto     Field = "contexto"
	FieldFormato      Field = "formato"
	FieldTono         Field = "tono"
	FieldHerramienta  Field = "herramienta"
	FieldModo         Field = "modo"
	FieldDescripcion  Field = "descripcion"
	FieldEstilo       Field = "estilo"
	FieldComposicion  Field = "composicion"
	FieldIluminacion  Field = "iluminacion"
	FieldExtras       Field = "extras"
	FieldEscena       Field = "escena"
	FieldAccion       Field = "accion"
	FieldEstiloVisual Field = "estiloVisual"
	FieldCamara       Field = "camara"
	FieldTipoSonido   Field = "tipoSonido"
	FieldGenero       Field = "genero"
	FieldAtmosfera    Field = "atmosfera"
	FieldInstrumentos Field = "instrumentos"
	FieldUso          Field = "uso"
	FieldLenguaje     Field = "lenguaje"
	FieldTarea        Field = "tarea"
	FieldRequisitos   Field = "requisitos"
	FieldEjemplo      Field = "ejemplo"
	FieldNivel        Field = "nivel"
)

// MainField returns the mandatory field of a kind.
func MainField(kind Kind) Field {
	switch kind {
	case KindText:
		return FieldObjetivo
	case KindImage:
		return FieldDescripcion
	case KindVideo:
		return FieldEscena
	case KindAudio:
		return FieldTipoSonido
	case KindCode:
		return FieldTarea
	}
	return ""
}

// fieldRef resolves a field name to the backing string of the active
// variant. Explicit dispatch keeps dynamic field access type safe; there is
// deliberately no reflection here.
func (o *PromptOptions) fieldRef(f Field) (*string, bool) {
	switch o.Type {
	case KindText:
		if o.Text == nil {
			return nil, false
		}
		switch f {
		case FieldObjetivo:
			return &o.Text.Objetivo, true
		case FieldRol:
			return &o.Text.Rol, true
		case FieldContexto:
			return &o.Text.Contexto, true
		case FieldFormato:
			return &o.Text.Formato, true
		case FieldTono:
			return &o.Text.Tono, true
		case FieldHerramienta:
			return &o.Text.Herramienta, true
		}
	case KindImage:
		if o.Image == nil {
			return nil, false
		}
		switch f {
		case FieldModo:
			return &o.Image.Modo, true
		case FieldDescripcion:
			return &o.Image.Descripcion, true
		case FieldEstilo:
			return &o.Image.Estilo, true
		case FieldComposicion:
			return &o.Image.Composicion, true
		case FieldIluminacion:
			return &o.Image.Iluminacion, true
		case FieldExtras:
			return &o.Image.Extras, true
		}
	case KindVideo:
		if o.Video == nil {
			return nil, false
		}
		switch f {
		case FieldModo:
			return &o.Video.Modo, true
		case FieldEscena:
			return &o.Video.Escena, true
		case FieldAccion:
			return &o.Video.Accion, true
		case FieldEstiloVisual:
			return &o.Video.EstiloVisual, true
		case FieldCamara:
			return &o.Video.Camara, true
		case FieldExtras:
			return &o.Video.Extras, true
		}
	case KindAudio:
		if o.Audio == nil {
			return nil, false
		}
		switch f {
		case FieldModo:
			return &o.Audio.Modo, true
		case FieldTipoSonido:
			return &o.Audio.TipoSonido, true
		case FieldGenero:
			return &o.Audio.Genero, true
		case FieldAtmosfera:
			return &o.Audio.Atmosfera, true
		case FieldInstrumentos:
			return &o.Audio.Instrumentos, true
		case FieldUso:
			return &o.Audio.Uso, true
		}
	case KindCode:
		if o.Code == nil {
			return nil, false
		}
		switch f {
		case FieldLenguaje:
			return &o.Code.Lenguaje, true
		case FieldTarea:
			return &o.Code.Tarea, true
		case FieldRequisitos:
			return &o.Code.Requisitos, true
		case FieldEjemplo:
			return &o.Code.Ejemplo, true
		case FieldNivel:
			return &o.Code.Nivel, true
		}
	}
	return nil, false
}

// SetField replaces the value of a field on the active variant.
func (o *PromptOptions) SetField(f Field, value string) error {
	ref, ok := o.fieldRef(f)
	if !ok {
		return fmt.Errorf("field %q does not exist on kind %q", f, o.Type)
	}
	*ref = value
	return nil
}

// FieldValue reads the current value of a field on the active variant.
func (o *PromptOptions) FieldValue(f Field) (string, error) {
	ref, ok := o.fieldRef(f)
	if !ok {
		return "", fmt.Errorf("field %q does not exist on kind %q", f, o.Type)
	}
	return *ref, nil
}

// AppendTranscript appends a finalized dictation transcript to a field,
// separating it from existing content with a single space.
func (o *PromptOptions) AppendTranscript(f Field, transcript string) error {
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return nil
	}
	ref, ok := o.fieldRef(f)
	if !ok {
		return fmt.Errorf("field %q does not exist on kind %q", f, o.Type)
	}
	if *ref == "" {
		*ref = transcript
		return nil
	}
	*ref = strings.TrimRight(*ref, " ") + " " + transcript
	return nil
}
