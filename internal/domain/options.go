package domain

import (
	"encoding/json"
	"fmt"
)

// Kind identifies which prompt variant is active. The string values double
// as the wire discriminator so stored history records keep the original shape.
type Kind string

const (
	KindText  Kind = "Text"
	KindImage Kind = "Image"
	KindVideo Kind = "Video"
	KindAudio Kind = "Audio"
	KindCode  Kind = "Code"
)

// Kinds returns every prompt kind in tab order.
func Kinds() []Kind {
	return []Kind{KindText, KindImage, KindVideo, KindAudio, KindCode}
}

// ParseKind validates a raw discriminator value.
func ParseKind(raw string) (Kind, error) {
	switch Kind(raw) {
	case KindText, KindImage, KindVideo, KindAudio, KindCode:
		return Kind(raw), nil
	}
	return "", fmt.Errorf("unknown prompt kind %q", raw)
}

// Default labels for the fixed-choice selector fields.
const (
	DefaultTextHerramienta = "Estándar (Flash/Pro)"
	DefaultImageModo       = "Generar Imagen (Imagen 4)"
	DefaultVideoModo       = "Generar Video (Veo)"
	DefaultAudioModo       = "Generar Efecto/Música"
)

type TextOptions struct {
	Objetivo    string `json:"objetivo"`
	Rol         string `json:"rol"`
	Contexto    string `json:"contexto"`
	Formato     string `json:"formato"`
	Tono        string `json:"tono"`
	Herramienta string `json:"herramienta"`
}

type ImageOptions struct {
	Modo        string `json:"modo"`
	Descripcion string `json:"descripcion"`
	Estilo      string `json:"estilo"`
	Composicion string `json:"composicion"`
	Iluminacion string `json:"iluminacion"`
	Extras      string `json:"extras"`
}

type VideoOptions struct {
	Modo         string `json:"modo"`
	Escena       string `json:"escena"`
	Accion       string `json:"accion"`
	EstiloVisual string `json:"estiloVisual"`
	Camara       string `json:"camara"`
	Extras       string `json:"extras"`
}

type AudioOptions struct {
	Modo         string `json:"modo"`
	TipoSonido   string `json:"tipoSonido"`
	Genero       string `json:"genero"`
	Atmosfera    string `json:"atmosfera"`
	Instrumentos string `json:"instrumentos"`
	Uso          string `json:"uso"`
}

type CodeOptions struct {
	Lenguaje   string `json:"lenguaje"`
	Tarea      string `json:"tarea"`
	Requisitos string `json:"requisitos"`
	Ejemplo    string `json:"ejemplo"`
	Nivel      string `json:"nivel"`
}

// PromptOptions is a tagged union over the five prompt kinds. Exactly one
// variant pointer is non-nil and it always matches Type; NewOptions and
// UnmarshalJSON are the only constructors, both uphold the invariant.
type PromptOptions struct {
	Type  Kind
	Text  *TextOptions
	Image *ImageOptions
	Video *VideoOptions
	Audio *AudioOptions
	Code  *CodeOptions
}

// NewOptions returns a fresh options record for the requested kind with
// every free-text field empty and selector fields at their default label.
// An unrecognized kind is a programming error, not user input.
func NewOptions(kind Kind) (PromptOptions, error) {
	switch kind {
	case KindText:
		return PromptOptions{Type: KindText, Text: &TextOptions{Herramienta: DefaultTextHerramienta}}, nil
	case KindImage:
		return PromptOptions{Type: KindImage, Image: &ImageOptions{Modo: DefaultImageModo}}, nil
	case KindVideo:
		return PromptOptions{Type: KindVideo, Video: &VideoOptions{Modo: DefaultVideoModo}}, nil
	case KindAudio:
		return PromptOptions{Type: KindAudio, Audio: &AudioOptions{Modo: DefaultAudioModo}}, nil
	case KindCode:
		return PromptOptions{Type: KindCode, Code: &CodeOptions{}}, nil
	}
	return PromptOptions{}, fmt.Errorf("unknown prompt kind %q", kind)
}

// MustNewOptions is NewOptions for statically known kinds.
func MustNewOptions(kind Kind) PromptOptions {
	opts, err := NewOptions(kind)
	if err != nil {
		panic(err)
	}
	return opts
}

// Valid reports whether the union invariant holds: a known kind with its
// matching variant allocated. Decoded external input (share tokens,
// persisted records) must pass this before entering the session.
func (o PromptOptions) Valid() bool {
	switch o.Type {
	case KindText:
		return o.Text != nil
	case KindImage:
		return o.Image != nil
	case KindVideo:
		return o.Video != nil
	case KindAudio:
		return o.Audio != nil
	case KindCode:
		return o.Code != nil
	}
	return false
}

// Title returns the value of the mandatory main field for the active
// variant. It doubles as the display title of a history entry.
func (o PromptOptions) Title() string {
	switch o.Type {
	case KindText:
		if o.Text != nil {
			return o.Text.Objetivo
		}
	case KindImage:
		if o.Image != nil {
			return o.Image.Descripcion
		}
	case KindVideo:
		if o.Video != nil {
			return o.Video.Escena
		}
	case KindAudio:
		if o.Audio != nil {
			return o.Audio.TipoSonido
		}
	case KindCode:
		if o.Code != nil {
			return o.Code.Tarea
		}
	}
	return ""
}

// Clone returns a deep copy so history snapshots never alias live form state.
func (o PromptOptions) Clone() PromptOptions {
	out := PromptOptions{Type: o.Type}
	switch {
	case o.Text != nil:
		v := *o.Text
		out.Text = &v
	case o.Image != nil:
		v := *o.Image
		out.Image = &v
	case o.Video != nil:
		v := *o.Video
		out.Video = &v
	case o.Audio != nil:
		v := *o.Audio
		out.Audio = &v
	case o.Code != nil:
		v := *o.Code
		out.Code = &v
	}
	return out
}

// MarshalJSON flattens the active variant beside the type discriminator,
// matching the record shape persisted by earlier revisions of the app.
func (o PromptOptions) MarshalJSON() ([]byte, error) {
	switch o.Type {
	case KindText:
		if o.Text == nil {
			break
		}
		return json.Marshal(struct {
			Type Kind `json:"type"`
			*TextOptions
		}{o.Type, o.Text})
	case KindImage:
		if o.Image == nil {
			break
		}
		return json.Marshal(struct {
			Type Kind `json:"type"`
			*ImageOptions
		}{o.Type, o.Image})
	case KindVideo:
		if o.Video == nil {
			break
		}
		return json.Marshal(struct {
			Type Kind `json:"type"`
			*VideoOptions
		}{o.Type, o.Video})
	case KindAudio:
		if o.Audio == nil {
			break
		}
		return json.Marshal(struct {
			Type Kind `json:"type"`
			*AudioOptions
		}{o.Type, o.Audio})
	case KindCode:
		if o.Code == nil {
			break
		}
		return json.Marshal(struct {
			Type Kind `json:"type"`
			*CodeOptions
		}{o.Type, o.Code})
	}
	return nil, fmt.Errorf("prompt options: no active variant for kind %q", o.Type)
}

// UnmarshalJSON reads the discriminator first and decodes the matching variant.
func (o *PromptOptions) UnmarshalJSON(data []byte) error {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	kind, err := ParseKind(probe.Type)
	if err != nil {
		return err
	}
	*o = PromptOptions{Type: kind}
	switch kind {
	case KindText:
		o.Text = &TextOptions{}
		return json.Unmarshal(data, o.Text)
	case KindImage:
		o.Image = &ImageOptions{}
		return json.Unmarshal(data, o.Image)
	case KindVideo:
		o.Video = &VideoOptions{}
		return json.Unmarshal(data, o.Video)
	case KindAudio:
		o.Audio = &AudioOptions{}
		return json.Unmarshal(data, o.Audio)
	case KindCode:
		o.Code = &CodeOptions{}
		return json.Unmarshal(data, o.Code)
	}
	return fmt.Errorf("unknown prompt kind %q", kind)
}
