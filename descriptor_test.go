package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentFileRelativePath(t *testing.T) {
	tests := []struct {
		name string
		file ContentFile
		want string
	}{
		{"root path", ContentFile{FileName: "index.html", FilePath: "/"}, "index.html"},
		{"empty path", ContentFile{FileName: "index.html"}, "index.html"},
		{"sub path", ContentFile{FileName: "a.html", FilePath: "/media/"}, "media/a.html"},
		{"nested sub path", ContentFile{FileName: "b.png", FilePath: "/media/img/"}, "media/img/b.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.file.RelativePath())
		})
	}
}

func TestResourceMainFile(t *testing.T) {
	res := &Resource{Contents: []ContentFile{
		{FileName: "main.pdf"},
		{FileName: "extra.txt"},
	}}
	main, ok := res.MainFile()
	assert.True(t, ok)
	assert.Equal(t, "main.pdf", main.FileName)

	_, ok = (&Resource{}).MainFile()
	assert.False(t, ok)

	var nilRes *Resource
	_, ok = nilRes.MainFile()
	assert.False(t, ok)
}
