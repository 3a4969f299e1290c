package action

import (
	"bytes"
	"log/slog"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// Narration templates. These strings are the user-visible contract; keep
// them byte-stable.
var narrations = template.Must(template.New("narrations").Funcs(sprig.TxtFuncMap()).Parse(`
{{- define "unknown" -}}I don't know what "{{ .Verb }}" means{{- end -}}
{{- define "nothing_here" -}}There's no "{{ .Target }}" here.{{- end -}}
{{- define "move_failed" -}}Oops, could not find "{{ .Destination }}"{{- end -}}
{{- define "say_self" -}}You say: "{{ .Message }}"{{- end -}}
{{- define "say_other" -}}{{ .Speaker }} says: "{{ .Message }}"{{- end -}}
{{- define "fight_absent" -}}There is no "{{ .Target }}" here{{- end -}}
{{- define "fight_self" -}}You start to fight {{ .Target }}{{- end -}}
{{- define "fight_other" -}}{{ .Attacker }} starts to fight {{ .Target }}{{- end -}}
{{- define "hit" -}}{{ .Attacker }} hit you for {{ .Damage }}hp ({{ .Remaining }}hp left).{{- end -}}
{{- define "died" -}}You have died.{{- end -}}
{{- define "stopped" -}}{{ .Attacker }} stopped attacking you.{{- end -}}
`))

// narrate renders a named narration. The templates are static, so a
// render failure is a programming error; it is logged and surfaces to
// the player as empty text rather than a crash.
func narrate(name string, data any) string {
	var buf bytes.Buffer
	err := narrations.ExecuteTemplate(&buf, name, data)
	if err != nil {
		slog.Error("rendering narration", "template", name, "error", err)
		return ""
	}
	return buf.String()
}
