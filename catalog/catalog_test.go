// ABOUTME: Tests for the static catalogs and the user template layer
// ABOUTME: Verifies library search, built-in protection and template persistence
package catalog

import (
	"errors"
	"testing"
	"time"

	"github.com/harperreed/lifehub/models"
	"github.com/harperreed/lifehub/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTemplates(t *testing.T) (*Templates, *store.MemoryKV) {
	t.Helper()
	kv := store.NewMemoryKV()
	state := store.NewState(kv, store.KeyUserTemplates, []models.ContentTemplate{}, nil)
	return NewTemplates(state), kv
}

func TestStaticCatalogs(t *testing.T) {
	assert.Len(t, FunnelBlueprints(), 3)
	assert.Len(t, LandingPageBlueprints(), 3)
	assert.Len(t, FormBlueprints(), 3)
	assert.Len(t, LibraryTemplates(), 7)

	builtins := BuiltinTemplates()
	require.Len(t, builtins, 3)
	assert.Equal(t, []string{"0", "1", "2"}, []string{builtins[0].ID, builtins[1].ID, builtins[2].ID})

	for _, f := range FunnelBlueprints() {
		assert.Len(t, f.Stages, models.FunnelStageCount, f.ID)
	}
}

func TestCatalogCopiesAreIndependent(t *testing.T) {
	got := LibraryTemplates()
	got[0].Title = "changed"
	assert.NotEqual(t, "changed", LibraryTemplates()[0].Title)
}

func TestSearchLibrary(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		category string
		want     []string
	}{
		{"everything", "", "All", []string{"l0", "l1", "l2", "l3", "l4", "l5", "l6"}},
		{"empty category", "", "", []string{"l0", "l1", "l2", "l3", "l4", "l5", "l6"}},
		{"title match", "gift of love", "", []string{"l4"}},
		{"subcategory match", "iul", "", []string{"l2"}},
		{"description match", "SCHOOL DISTRICTS", "All", []string{"l5"}},
		{"category filter", "", "Annuities", []string{"l3"}},
		{"category and query", "mortgage", "Life Insurance", []string{"l1"}},
		{"category excludes", "mortgage", "Annuities", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SearchLibrary(tt.query, tt.category)
			ids := make([]string, 0, len(got))
			for _, tpl := range got {
				ids = append(ids, tpl.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestFindLibraryTemplate(t *testing.T) {
	tpl, ok := FindLibraryTemplate("l3")
	require.True(t, ok)
	assert.Equal(t, models.LibraryAnnuities, tpl.Category)

	_, ok = FindLibraryTemplate("l99")
	assert.False(t, ok)
}

func TestAddUserTemplate(t *testing.T) {
	templates, kv := newTemplates(t)
	now := time.UnixMilli(1767225600000)

	tpl, err := templates.AddUserTemplate(" Review Reminder ", "Remind clients about annual reviews.", now)
	require.NoError(t, err)
	assert.Equal(t, "1767225600000", tpl.ID)
	assert.Equal(t, "Review Reminder", tpl.Name)
	assert.Equal(t, UserTemplateIcon, tpl.Icon)

	dup, err := templates.AddUserTemplate("Second", "Same millisecond.", now)
	require.NoError(t, err)
	assert.Equal(t, "1767225600001", dup.ID)

	all := templates.All()
	require.Len(t, all, 5)
	assert.Equal(t, "0", all[0].ID, "built-ins come first")
	assert.Equal(t, tpl.ID, all[3].ID)

	persisted := store.Load(kv, store.KeyUserTemplates, []models.ContentTemplate{})
	assert.Len(t, persisted, 2, "built-ins are never persisted")
}

func TestAddUserTemplateValidation(t *testing.T) {
	templates, _ := newTemplates(t)

	_, err := templates.AddUserTemplate("", "structure", time.Now())
	var verr *models.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "name", verr.Field)

	_, err = templates.AddUserTemplate("name", "   ", time.Now())
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "structure", verr.Field)

	assert.Empty(t, templates.User())
}

func TestDeleteUserTemplate(t *testing.T) {
	templates, _ := newTemplates(t)
	tpl, err := templates.AddUserTemplate("Mine", "Structure", time.Now())
	require.NoError(t, err)

	assert.False(t, templates.DeleteUserTemplate("0"), "built-ins cannot be deleted")
	assert.False(t, templates.DeleteUserTemplate("nope"))
	assert.Len(t, templates.All(), 4)

	assert.True(t, templates.DeleteUserTemplate(tpl.ID))
	assert.Len(t, templates.All(), 3)

	_, ok := templates.Find("1")
	assert.True(t, ok)
}

func TestStoredBuiltinIDsAreIgnored(t *testing.T) {
	kv := store.NewMemoryKV()
	require.NoError(t, store.Save(kv, store.KeyUserTemplates, []models.ContentTemplate{
		{ID: "0", Name: "Shadow", Structure: "x"},
		{ID: "42", Name: "Real", Structure: "y"},
	}))
	templates := NewTemplates(store.NewState(kv, store.KeyUserTemplates, []models.ContentTemplate{}, nil))

	all := templates.All()
	require.Len(t, all, 4)
	assert.Equal(t, "Legacy Anchor", all[0].Name)
	assert.Equal(t, "42", all[3].ID)
}
