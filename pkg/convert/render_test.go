package convert

import "testing"

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     map[string]string
		want     string
	}{
		{
			name:     "substitutes known keys",
			template: "<h1>{{title}}</h1>",
			data:     map[string]string{"title": "Hello"},
			want:     "<h1>Hello</h1>",
		},
		{
			name:     "unknown placeholders vanish",
			template: "{{title}}{{unknown}}",
			data:     map[string]string{"title": "X"},
			want:     "X",
		},
		{
			name:     "every occurrence replaced",
			template: "{{x}} and {{x}}",
			data:     map[string]string{"x": "y"},
			want:     "y and y",
		},
		{
			name:     "values are not regex-interpreted",
			template: "{{link}}",
			data:     map[string]string{"link": "$1 (50%) [a-z]"},
			want:     "$1 (50%) [a-z]",
		},
		{
			name:     "empty map strips everything",
			template: "a{{one}}b{{two}}c",
			data:     nil,
			want:     "abc",
		},
		{
			name:     "values are not escaped",
			template: "{{frag}}",
			data:     map[string]string{"frag": "<div class=\"x\">&amp;</div>"},
			want:     "<div class=\"x\">&amp;</div>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.template, tt.data); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
