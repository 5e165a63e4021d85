package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/gmi-lojistik/tir-takip/internal/models"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/xerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issuesOf(t *testing.T, err error) []xerr.Issue {
	t.Helper()
	var ve *xerr.ValidationError
	require.True(t, errors.As(err, &ve), "expected ValidationError, got %v", err)
	return ve.Issues
}

func TestInsertTir(t *testing.T) {
	assert.NoError(t, Struct(&models.InsertTir{Phone: "+90 532 111 2233"}, xerr.ErrInvalidTir))

	err := Struct(&models.InsertTir{Phone: ""}, xerr.ErrInvalidTir)
	require.ErrorIs(t, err, xerr.ErrInvalidTir)
	issues := issuesOf(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "phone", issues[0].Field)
	assert.Equal(t, []string{"phone"}, issues[0].Path)
	assert.Equal(t, "required", issues[0].Code)
	assert.Equal(t, "Telefon numarası gereklidir", issues[0].Message)
}

func TestTirPatch(t *testing.T) {
	empty := ""
	plate := "34 ABC 123"
	assert.NoError(t, Struct(&models.TirPatch{}, xerr.ErrInvalidTir))
	assert.NoError(t, Struct(&models.TirPatch{Plate: &plate}, xerr.ErrInvalidTir))

	issues := issuesOf(t, Struct(&models.TirPatch{Phone: &empty}, xerr.ErrInvalidTir))
	require.Len(t, issues, 1)
	assert.Equal(t, "phone", issues[0].Field)
}

func TestInsertDocument(t *testing.T) {
	valid := models.InsertDocument{
		TirID:              "t1",
		FileName:           "cmr.pdf",
		FileType:           models.FileTypeCMR,
		CloudinaryURL:      "https://res.example.com/cmr.pdf",
		CloudinaryPublicID: "gmi-tir-documents/t1_x",
	}
	assert.NoError(t, Struct(&valid, xerr.ErrInvalidDocument))

	bad := valid
	bad.FileType = "Passport"
	bad.CloudinaryURL = ""
	issues := issuesOf(t, Struct(&bad, xerr.ErrInvalidDocument))
	fields := make([]string, 0, len(issues))
	for _, is := range issues {
		fields = append(fields, is.Field)
	}
	assert.ElementsMatch(t, []string{"fileType", "cloudinaryUrl"}, fields)

	neg := int64(-1)
	bad = valid
	bad.FileSize = &neg
	issues = issuesOf(t, Struct(&bad, xerr.ErrInvalidDocument))
	require.Len(t, issues, 1)
	assert.Equal(t, "gte", issues[0].Code)
}

func TestInsertShareLink(t *testing.T) {
	tok := strings.Repeat("a", 32)
	assert.NoError(t, Struct(&models.InsertShareLink{Type: models.ShareTypeTir, TirID: "t1", Token: tok, Active: true}, xerr.ErrInvalidShareLink))
	assert.NoError(t, Struct(&models.InsertShareLink{Type: models.ShareTypeList, Token: tok, Active: true}, xerr.ErrInvalidShareLink))

	tests := []struct {
		name  string
		in    models.InsertShareLink
		field string
	}{
		{"tir without tirId", models.InsertShareLink{Type: models.ShareTypeTir, Token: tok}, "tirId"},
		{"list with tirId", models.InsertShareLink{Type: models.ShareTypeList, TirID: "t1", Token: tok}, "tirId"},
		{"short token", models.InsertShareLink{Type: models.ShareTypeList, Token: "abc"}, "token"},
		{"unknown type", models.InsertShareLink{Type: "all", Token: tok}, "type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := issuesOf(t, Struct(&tt.in, xerr.ErrInvalidShareLink))
			require.NotEmpty(t, issues)
			assert.Equal(t, tt.field, issues[0].Field)
		})
	}
}
