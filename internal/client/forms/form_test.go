package forms

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/kbadmin/internal/client/models"
	"github.com/dmitrijs2005/kbadmin/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() Form {
	return Form{
		Title:       "Test Entry",
		Description: "Test description",
		Category:    "Lathe",
		Status:      "certified",
		TechName:    "Test Technician",
		ProdMinutes: "5",
	}
}

func TestValidate_OK(t *testing.T) {
	in, err := validForm().Validate(nil)
	require.NoError(t, err)
	assert.Equal(t, models.EntryInput{
		Title:       "Test Entry",
		Description: "Test description",
		Category:    "Lathe",
		Status:      models.StatusCertified,
		TechName:    "Test Technician",
		ProdTime:    "5 min read",
	}, in)
}

func TestValidate_TrimsAndLowercasesStatus(t *testing.T) {
	f := validForm()
	f.Title = "  Spaced  "
	f.Status = " Training "
	in, err := f.Validate(nil)
	require.NoError(t, err)
	assert.Equal(t, "Spaced", in.Title)
	assert.Equal(t, models.StatusTraining, in.Status)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Form)
		field  string
	}{
		{"missing title", func(f *Form) { f.Title = "   " }, "title"},
		{"missing tech", func(f *Form) { f.TechName = "" }, "technician"},
		{"bad status", func(f *Form) { f.Status = "expert" }, "status"},
		{"unknown category", func(f *Form) { f.Category = "Welding" }, "category"},
		{"zero minutes", func(f *Form) { f.ProdMinutes = "0" }, "production time"},
		{"too many minutes", func(f *Form) { f.ProdMinutes = "121" }, "production time"},
		{"not a number", func(f *Form) { f.ProdMinutes = "five" }, "production time"},
		{"missing cover file", func(f *Form) { f.CoverPath = "/definitely/not/here.png" }, "cover image"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.mutate(&f)
			_, err := f.Validate(nil)
			require.Error(t, err)
			require.ErrorIs(t, err, common.ErrValidation)

			var errs Errors
			require.ErrorAs(t, err, &errs)
			assert.NotEmpty(t, errs.Field(tt.field), "errors: %v", errs)
		})
	}
}

func TestValidate_Bounds(t *testing.T) {
	for _, m := range []string{"1", "120"} {
		f := validForm()
		f.ProdMinutes = m
		_, err := f.Validate(nil)
		assert.NoError(t, err, m)
	}
}

func TestValidate_CustomCategories(t *testing.T) {
	f := validForm()
	f.Category = "Welding"
	in, err := f.Validate([]string{"Welding"})
	require.NoError(t, err)
	assert.Equal(t, "Welding", in.Category)

	f.Category = "Lathe"
	_, err = f.Validate([]string{"Welding"})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestValidate_ReportsEveryField(t *testing.T) {
	_, err := Form{}.Validate(nil)
	var errs Errors
	require.ErrorAs(t, err, &errs)
	assert.Len(t, errs, 6)
	assert.Contains(t, err.Error(), "title: is required")
}

func TestFromEntry_PrefillsMinutes(t *testing.T) {
	e := models.KnowledgeEntry{ID: "1", Title: "T", Category: "Lathe", Status: models.StatusTraining, ProdTime: "15 min read"}
	f := FromEntry(e)
	assert.Equal(t, "15", f.ProdMinutes)
	assert.Equal(t, "training", f.Status)

	f = FromEntry(models.KnowledgeEntry{ProdTime: "about an hour"})
	assert.Empty(t, f.ProdMinutes)
}

func TestDiff(t *testing.T) {
	cur := models.KnowledgeEntry{ID: "1", Title: "T", Description: "D", Category: "Lathe", Status: models.StatusTraining, TechName: "N", ProdTime: "5 min read"}
	in := models.EntryInput{Title: "T", Description: "D", Category: "Lathe", Status: models.StatusCertified, TechName: "N", ProdTime: "6 min read"}

	p := Diff(cur, in)
	require.NotNil(t, p.Status)
	require.NotNil(t, p.ProdTime)
	assert.Nil(t, p.Title)
	assert.Nil(t, p.Category)
	assert.Equal(t, "6 min read", *p.ProdTime)

	assert.True(t, Diff(cur, models.EntryInput{
		Title: "T", Description: "D", Category: "Lathe", Status: models.StatusTraining, TechName: "N", ProdTime: "5 min read",
	}).Empty())
}

// 1x1 transparent PNG.
var pngPixel = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0a, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

func TestLoadCover(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "cover.png")
	require.NoError(t, os.WriteFile(img, pngPixel, 0o600))

	c, err := LoadCover(img)
	require.NoError(t, err)
	assert.Equal(t, "cover.png", c.Name)
	assert.Equal(t, "image/png", c.MIMEType)
	assert.Equal(t, int64(len(pngPixel)), c.Size)
	assert.Contains(t, c.Preview(), "not uploaded")

	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("plain text"), 0o600))
	_, err = LoadCover(txt)
	assert.ErrorContains(t, err, "not an image")

	_, err = LoadCover(dir)
	assert.ErrorContains(t, err, "directory")

	_, err = LoadCover(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
}
