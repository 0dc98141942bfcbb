package msvc

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"github.com/tmaxmax/bffgen/pkg/toolchain"
)

func writeFile(t *testing.T, fsys afero.Fs, path, contents string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fsys, toolchain.HostPath(path), []byte(contents), 0o644))
}

func mkdir(t *testing.T, fsys afero.Fs, paths ...string) {
	t.Helper()
	for _, p := range paths {
		require.NoError(t, fsys.MkdirAll(toolchain.HostPath(p), 0o755))
	}
}

func TestResolveToolsetVersion(t *testing.T) {
	type test struct {
		name      string
		contents  *string
		expect    string
		expectErr error
	}

	content := func(s string) *string { return &s }

	tests := []test{
		{name: "Trimmed", contents: content("14.38.33130\r\n"), expect: "14.38.33130"},
		{name: "Missing", expectErr: toolchain.ErrConfigFileMissing},
		{name: "Empty", contents: content(" \n"), expectErr: toolchain.ErrConfigFileMissing},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			if tt.contents != nil {
				writeFile(t, fsys, `C:\VS\VC\Auxiliary\Build\Microsoft.VCToolsVersion.default.txt`, *tt.contents)
			}

			v, err := ResolveToolsetVersion(fsys, `C:\VS`)
			if tt.expectErr != nil {
				require.ErrorIs(t, err, tt.expectErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expect, v)
		})
	}
}

func TestToolchainPaths(t *testing.T) {
	table, err := ToolchainPaths(`C:\VS`, "14.38.33130", ArchX64, ArchARM64)
	require.NoError(t, err)

	expected := map[string]string{
		"VSInstallPath":   `C:\VS`,
		"VSBinPath_arm64": `C:\VS\VC\Tools\MSVC\14.38.33130\bin\Hostx64\arm64`,
		"VSLibPath_arm64": `C:\VS\VC\Tools\MSVC\14.38.33130\lib\arm64`,
		"VSIncludePath":   `C:\VS\VC\Tools\MSVC\14.38.33130\include`,
	}
	require.Equal(t, len(expected), table.Len())
	for key, path := range expected {
		got, ok := table.Get(key)
		require.True(t, ok, key)
		require.Equal(t, path, got, key)
	}
}

func TestToolchainPaths_RelativeRoot(t *testing.T) {
	_, err := ToolchainPaths(`VS`, "14.38.33130", ArchX64, ArchX64)
	require.ErrorIs(t, err, toolchain.ErrRelativePath)
}

func TestDiscoverSDKLayout(t *testing.T) {
	fsys := afero.NewMemMapFs()
	mkdir(t, fsys, `C:\SDK\Lib\10.0.19041.0`, `C:\SDK\Lib\10.0.22621.0`, `C:\SDK\Lib\10.0.9200.0`)
	writeFile(t, fsys, `C:\SDK\Lib\99.0.0.0`, "not a directory")

	table, err := DiscoverSDKLayout(fsys, `C:\SDK`, ArchX64)
	require.NoError(t, err)

	expected := []struct{ key, path string }{
		{"WindowsSDKBasePath", `C:\SDK`},
		{"WindowsSDKIncludePath", `C:\SDK\Include\10.0.22621.0\um`},
		{"WindowsSDKLibPath_x64", `C:\SDK\Lib\10.0.22621.0\um\x64`},
		{"WindowsSDKUcrtIncludePath", `C:\SDK\Include\10.0.22621.0\ucrt`},
		{"WindowsSDKUcrtLibPath_x64", `C:\SDK\Lib\10.0.22621.0\ucrt\x64`},
	}

	var got []struct{ key, path string }
	for key, path := range table.All() {
		got = append(got, struct{ key, path string }{key, path})
	}
	require.Equal(t, expected, got)
}

func TestDiscoverSDKLayout_Missing(t *testing.T) {
	fsys := afero.NewMemMapFs()

	_, err := DiscoverSDKLayout(fsys, `C:\SDK`, ArchX64)
	require.ErrorIs(t, err, toolchain.ErrConfigFileMissing)

	mkdir(t, fsys, `C:\SDK\Lib`)
	_, err = DiscoverSDKLayout(fsys, `C:\SDK`, ArchX64)
	require.ErrorIs(t, err, toolchain.ErrConfigFileMissing)
}

func TestSelectSDKVersion(t *testing.T) {
	type test struct {
		name   string
		names  []string
		expect string
		ok     bool
	}

	tests := []test{
		{name: "Empty"},
		{name: "Single", names: []string{"10.0.19041.0"}, expect: "10.0.19041.0", ok: true},
		{name: "NumericNotLexical", names: []string{"10.0.9200.0", "10.0.10240.0"}, expect: "10.0.10240.0", ok: true},
		{name: "IgnoresNonVersions", names: []string{"wdf", "10.0.17763.0", "zzz"}, expect: "10.0.17763.0", ok: true},
		{name: "NoVersions", names: []string{"alpha", "beta"}, expect: "beta", ok: true},
		{name: "OrderIndependent", names: []string{"10.0.22621.0", "10.0.19041.0"}, expect: "10.0.22621.0", ok: true},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			got, ok := SelectSDKVersion(tt.names)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.expect, got)
		})
	}
}
