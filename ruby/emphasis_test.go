package ruby

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDotsToEmphasis(t *testing.T) {
	tests := []struct {
		name string
		src  string
		tag  string
		want string
		n    int
	}{
		{
			name: "dots",
			src:  "<p>これは<ruby>大事<rt>・・</rt></ruby>です</p>",
			want: "<p>これは<em>大事</em>です</p>",
			n:    1,
		},
		{
			name: "dots_with_parens",
			src:  "<p><ruby>大<rp>(</rp><rt>・</rt><rp>)</rp></ruby></p>",
			tag:  "b",
			want: "<p><b>大</b></p>",
			n:    1,
		},
		{
			name: "sesame_marks",
			src:  "<p><ruby>強調<rt> ﹅﹅ </rt></ruby></p>",
			want: "<p><em>強調</em></p>",
			n:    1,
		},
		{
			name: "phonetic_ruby_untouched",
			src:  "<p><ruby>猫<rt>ねこ</rt></ruby></p>",
			want: "<p><ruby>猫<rt>ねこ</rt></ruby></p>",
		},
		{
			name: "mixed_marks_untouched",
			src:  "<p><ruby>大事<rt>・•</rt></ruby></p>",
			want: "<p><ruby>大事<rt>・•</rt></ruby></p>",
		},
		{
			name: "empty_reading_untouched",
			src:  "<p><ruby>大事<rt></rt></ruby></p>",
			want: "<p><ruby>大事<rt></rt></ruby></p>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := parseBody(t, tt.src)
			require.Equal(t, tt.n, DotsToEmphasis(body, tt.tag))
			require.Equal(t, tt.want, renderChildren(t, body))
		})
	}
}

func TestDotsToEmphasisIsIdempotent(t *testing.T) {
	body := parseBody(t, "<p><ruby>一<rt>・</rt></ruby>と<ruby>二<rt>・</rt></ruby>と<ruby>猫<rt>ねこ</rt></ruby></p>")
	require.Equal(t, 2, DotsToEmphasis(body, ""))
	once := renderChildren(t, body)

	require.Zero(t, DotsToEmphasis(body, ""))
	require.Equal(t, once, renderChildren(t, body))
}
