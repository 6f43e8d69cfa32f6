// Package mail implementa el envío de correos de inventario (SMTP o log).
package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	texttemplate "text/template"

	"github.com/jhoicas/inventory-ledger-api/internal/application/ports"
)

//go:embed templates/*.html
var templateFS embed.FS

var subjects = map[string]string{
	ports.TemplateLowStock:        "Alerta de stock bajo: {{.ProductName}}",
	ports.TemplateStockAdjustment: "Movimiento de stock: {{.ProductName}}",
}

// Renderer arma asunto y cuerpo HTML de cada plantilla.
type Renderer struct {
	bodies   *template.Template
	subjects map[string]*texttemplate.Template
}

// NewRenderer parsea las plantillas embebidas.
func NewRenderer() (*Renderer, error) {
	bodies, err := template.New("mail").Option("missingkey=zero").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("mail: parsear plantillas: %w", err)
	}
	r := &Renderer{bodies: bodies, subjects: make(map[string]*texttemplate.Template, len(subjects))}
	for name, s := range subjects {
		t, err := texttemplate.New(name).Option("missingkey=zero").Parse(s)
		if err != nil {
			return nil, fmt.Errorf("mail: parsear asunto %s: %w", name, err)
		}
		r.subjects[name] = t
	}
	return r, nil
}

// Render devuelve asunto y cuerpo de la plantilla name.
func (r *Renderer) Render(name string, data map[string]any) (subject, body string, err error) {
	st, ok := r.subjects[name]
	if !ok {
		return "", "", fmt.Errorf("mail: plantilla desconocida %q", name)
	}
	var sb, bb bytes.Buffer
	if err := st.Execute(&sb, data); err != nil {
		return "", "", fmt.Errorf("mail: asunto %s: %w", name, err)
	}
	if err := r.bodies.ExecuteTemplate(&bb, name+".html", data); err != nil {
		return "", "", fmt.Errorf("mail: cuerpo %s: %w", name, err)
	}
	return sb.String(), bb.String(), nil
}
