// ABOUTME: User-defined post templates layered over the built-ins
// ABOUTME: Persisted under latimore_user_templates; built-ins are never stored or deleted
package catalog

import (
	"strconv"
	"strings"
	"time"

	"github.com/harperreed/lifehub/models"
	"github.com/harperreed/lifehub/store"
)

// UserTemplateIcon marks templates the agent saved.
const UserTemplateIcon = "fa-star"

// Templates manages the user template layer.
type Templates struct {
	state *store.State[[]models.ContentTemplate]
}

func NewTemplates(state *store.State[[]models.ContentTemplate]) *Templates {
	return &Templates{state: state}
}

// User returns only the saved user templates.
func (t *Templates) User() []models.ContentTemplate {
	saved := t.state.Get()
	out := make([]models.ContentTemplate, 0, len(saved))
	for _, tpl := range saved {
		if !IsBuiltin(tpl.ID) {
			out = append(out, tpl)
		}
	}
	return out
}

// All returns the built-ins followed by the user templates.
func (t *Templates) All() []models.ContentTemplate {
	return append(BuiltinTemplates(), t.User()...)
}

// Find looks up any template by id.
func (t *Templates) Find(id string) (models.ContentTemplate, bool) {
	for _, tpl := range t.All() {
		if tpl.ID == id {
			return tpl, true
		}
	}
	return models.ContentTemplate{}, false
}

// AddUserTemplate saves a new template. The id is the creation time in unix
// milliseconds, bumped if it collides with an existing id.
func (t *Templates) AddUserTemplate(name, structure string, now time.Time) (models.ContentTemplate, error) {
	name = strings.TrimSpace(name)
	structure = strings.TrimSpace(structure)
	if name == "" {
		return models.ContentTemplate{}, models.Required("name")
	}
	if structure == "" {
		return models.ContentTemplate{}, models.Required("structure")
	}

	var created models.ContentTemplate
	t.state.Update(func(saved []models.ContentTemplate) []models.ContentTemplate {
		user := make([]models.ContentTemplate, 0, len(saved)+1)
		taken := map[string]bool{}
		for _, tpl := range saved {
			if !IsBuiltin(tpl.ID) {
				user = append(user, tpl)
				taken[tpl.ID] = true
			}
		}
		ms := now.UnixMilli()
		for taken[strconv.FormatInt(ms, 10)] {
			ms++
		}
		created = models.ContentTemplate{
			ID:        strconv.FormatInt(ms, 10),
			Name:      name,
			Structure: structure,
			Icon:      UserTemplateIcon,
		}
		return append(user, created)
	})
	return created, nil
}

// DeleteUserTemplate removes a user template. Built-in and unknown ids are
// ignored; the return value reports whether anything was removed.
func (t *Templates) DeleteUserTemplate(id string) bool {
	if IsBuiltin(id) {
		return false
	}
	removed := false
	t.state.Apply(func(saved []models.ContentTemplate) ([]models.ContentTemplate, bool) {
		out := make([]models.ContentTemplate, 0, len(saved))
		for _, tpl := range saved {
			if tpl.ID == id {
				removed = true
				continue
			}
			out = append(out, tpl)
		}
		return out, removed
	})
	return removed
}
