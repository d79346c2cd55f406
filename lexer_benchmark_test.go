package luacst

import (
	"strings"
	"testing"
)

// BenchmarkLexer measures raw tokenization throughput (no parsing).
func BenchmarkLexer(b *testing.B) {
	cases := []struct {
		name  string
		input string
	}{
		{"short_statement", "local x = 1 + 2 * 3"},
		{"identifier_chain", "a.b.c.d.e.f.g.h.i.j"},
		{"function_call", "obj:method(1, 2, 3)"},
		{"long_string", "[[" + strings.Repeat("line of text\n", 50) + "]]"},
		{"number_heavy", "1 + 2.5 - 0x1F * 1e10 / .5"},
	}

	for _, tc := range cases {
		b.Run(tc.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				lx := NewLexer(tc.input)
				for {
					tok := lx.NextToken()
					if tok.Kind == EoF {
						break
					}
				}
			}
		})
	}
}

// BenchmarkParse measures full parse throughput (lex + CST build).
func BenchmarkParse(b *testing.B) {
	cases := []struct {
		name  string
		input string
	}{
		{"assignment", "local x, y, z = 1, 2, 3"},
		{"control_flow", "if a then b() elseif c then d() else e() end"},
		{"function_def", "function o:m(a, b, ...) return a + b end"},
		{"table_constructor", "local t = {1, 2, x = 3, [4] = 5}"},
		{"loop", "for i = 1, 100 do total = total + i end"},
	}

	for _, tc := range cases {
		b.Run(tc.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				Parse(tc.input)
			}
		})
	}
}
