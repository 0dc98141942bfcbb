package msvc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJoin(t *testing.T) {
	type test struct {
		elem   []string
		expect string
	}

	tests := []test{
		{elem: []string{`C:\VS`, `VC\Tools\MSVC`, "14.38.33130"}, expect: `C:\VS\VC\Tools\MSVC\14.38.33130`},
		{elem: []string{`C:\VS\`, `\VC`}, expect: `C:\VS\VC`},
		{elem: []string{`C:\`, "Lib"}, expect: `C:\Lib`},
		{elem: []string{"/opt/vs", `VC\Tools`}, expect: `/opt/vs\VC\Tools`},
		{elem: []string{"/opt/vs/", "include"}, expect: "/opt/vs/include"},
		{elem: []string{"", `C:\VS`, "", "bin"}, expect: `C:\VS\bin`},
		{elem: nil, expect: ""},
	}

	for _, tt := range tests {
		require.Equal(t, tt.expect, join(tt.elem...), "%q", tt.elem)
	}
}

func TestParseArch(t *testing.T) {
	for name, expect := range map[string]Arch{
		"":      ArchX64,
		"x64":   ArchX64,
		"AMD64": ArchX64,
		"386":   ArchX86,
		"arm64": ArchARM64,
		"arm":   ArchARM,
	} {
		arch, err := ParseArch(name)
		require.NoError(t, err, name)
		require.Equal(t, expect, arch, name)
	}

	_, err := ParseArch("mips")
	require.Error(t, err)
}
