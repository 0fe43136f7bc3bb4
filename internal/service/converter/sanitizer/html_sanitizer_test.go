package sanitizer

import (
	"strings"
	"testing"
)

func TestSanitize_StripsActiveContent(t *testing.T) {
	s := NewHTMLSanitizer()

	tests := []struct {
		name    string
		input   string
		absent  []string
		present []string
	}{
		{
			name:    "script tag",
			input:   `<p>hello</p><script>alert(1)</script>`,
			absent:  []string{"<script", "alert(1)"},
			present: []string{"<p>hello</p>"},
		},
		{
			name:    "event handler",
			input:   `<p onclick="steal()">click</p>`,
			absent:  []string{"onclick", "steal"},
			present: []string{"click"},
		},
		{
			name:   "javascript url",
			input:  `<a href="javascript:alert(1)">x</a>`,
			absent: []string{"javascript:"},
		},
		{
			name:    "code language class kept",
			input:   `<pre><code class="language-go">fmt.Println()</code></pre>`,
			present: []string{`class="language-go"`},
		},
		{
			name:   "arbitrary class dropped",
			input:  `<code class="evil">x</code>`,
			absent: []string{"evil"},
		},
		{
			name:    "data uri image kept",
			input:   `<img src="data:image/png;base64,iVBORw0KGgo=">`,
			present: []string{"data:image/png;base64,"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(s.Sanitize([]byte(tt.input)))
			for _, a := range tt.absent {
				if strings.Contains(got, a) {
					t.Errorf("Sanitize(%q) = %q, should not contain %q", tt.input, got, a)
				}
			}
			for _, p := range tt.present {
				if !strings.Contains(got, p) {
					t.Errorf("Sanitize(%q) = %q, should contain %q", tt.input, got, p)
				}
			}
		})
	}
}
