package crawler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTitles(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{
			name: "two headings",
			body: "<html><body><h1> Title 1 </h1><h1>Title 2</h1></body></html>",
			want: []string{"Title 1", "Title 2"},
		},
		{
			name: "nested markup",
			body: "<h1>\n  <span>Hello</span> <em>world</em>\n</h1>",
			want: []string{"Hello world"},
		},
		{
			name: "document order across sections",
			body: "<section><h1>A</h1></section><h2>skip</h2><div><div><h1>B</h1></div></div>",
			want: []string{"A", "B"},
		},
		{
			name: "no headings",
			body: "<p>nothing here</p>",
			want: []string{},
		},
		{
			name: "empty heading",
			body: "<h1>   </h1>",
			want: []string{""},
		},
		{
			name: "empty body",
			body: "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTitles(tt.body))
		})
	}
}
