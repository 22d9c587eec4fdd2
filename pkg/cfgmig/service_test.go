package cfgmig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/260830-go-pkg-cfgmig/pkg/cfgmig"
)

// greetConfig 服务测试用的最小配置类型。
type greetConfig struct {
	Name     string `json:"name"`
	Greeting string `json:"greeting"`
}

func defaultGreetConfig() greetConfig {
	return greetConfig{Name: "default", Greeting: "Hi"}
}

// newGreetService 构造目标版本为 1、注册 0→1 步骤的服务。
func newGreetService(t *testing.T) *cfgmig.Service[greetConfig] {
	t.Helper()

	chain := cfgmig.NewChain().
		MustRegister(cfgmig.Step{From: 0, To: 1, Transform: cfgmig.AddField("greeting", "Hello")})

	return cfgmig.NewService(1, defaultGreetConfig, cfgmig.WithChain(chain))
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestService_Load_MissingFile(t *testing.T) {
	svc := newGreetService(t)

	result := svc.Load(filepath.Join(t.TempDir(), "missing.json"))

	require.NotNil(t, result.Config)
	assert.True(t, result.WasCreated)
	assert.False(t, result.WasMigrated)
	assert.Equal(t, defaultGreetConfig(), *result.Config)
}

func TestService_Load_VersionMatch(t *testing.T) {
	svc := newGreetService(t)
	path := writeConfig(t, `{"Version": 1, "name": "Bob", "greeting": "Howdy"}`)

	result := svc.Load(path)

	require.NotNil(t, result.Config)
	assert.False(t, result.WasCreated)
	assert.False(t, result.WasMigrated)
	assert.Equal(t, cfgmig.Version(1), result.OriginalVersion)
	assert.Equal(t, "Bob", result.Config.Name)
	assert.Equal(t, "Howdy", result.Config.Greeting)
}

func TestService_Load_LegacyUpgrade(t *testing.T) {
	svc := newGreetService(t)
	path := writeConfig(t, `{"Version":0,"Name":"Bob"}`)

	result := svc.Load(path)

	require.NotNil(t, result.Config)
	assert.True(t, result.WasMigrated)
	assert.False(t, result.WasCreated)
	assert.Equal(t, cfgmig.Version(0), result.OriginalVersion)
	assert.Equal(t, "Bob", result.Config.Name)
	assert.Equal(t, "Hello", result.Config.Greeting)
}

func TestService_Load_LegacyWithoutVersionField(t *testing.T) {
	svc := newGreetService(t)
	path := writeConfig(t, `{"name":"Eve"}`)

	result := svc.Load(path)

	assert.True(t, result.WasMigrated)
	assert.Equal(t, cfgmig.Version(0), result.OriginalVersion)
	assert.Equal(t, "Eve", result.Config.Name)
	assert.Equal(t, "Hello", result.Config.Greeting)
}

func TestService_Load_FutureVersion(t *testing.T) {
	svc := newGreetService(t)
	path := writeConfig(t, `{"Version": 99, "name": "Bob"}`)

	result := svc.Load(path)

	require.NotNil(t, result.Config)
	assert.False(t, result.WasCreated)
	assert.False(t, result.WasMigrated)
	assert.Equal(t, cfgmig.Version(99), result.OriginalVersion)
	assert.Equal(t, "Bob", result.Config.Name)
}

func TestService_Load_Fallbacks(t *testing.T) {
	tests := []struct {
		name    string
		content string
		service func(t *testing.T) *cfgmig.Service[greetConfig]
	}{
		{
			name:    "invalid json syntax",
			content: `{"Version": 0, "name": `,
			service: newGreetService,
		},
		{
			name:    "empty file",
			content: "",
			service: newGreetService,
		},
		{
			name:    "json root is not an object",
			content: `[1, 2, 3]`,
			service: newGreetService,
		},
		{
			name:    "no migration path",
			content: `{"Version": 0}`,
			service: func(t *testing.T) *cfgmig.Service[greetConfig] {
				t.Helper()
				// 空链：0 → 1 不可达
				return cfgmig.NewService(1, defaultGreetConfig)
			},
		},
		{
			name:    "failing migration step",
			content: `{"Version": 0}`,
			service: func(t *testing.T) *cfgmig.Service[greetConfig] {
				t.Helper()
				chain := cfgmig.NewChain().
					MustRegister(cfgmig.Step{From: 0, To: 1, Transform: func(map[string]any) (map[string]any, error) {
						return nil, assert.AnError
					}})

				return cfgmig.NewService(1, defaultGreetConfig, cfgmig.WithChain(chain))
			},
		},
		{
			name:    "panicking migration step",
			content: `{"Version": 0}`,
			service: func(t *testing.T) *cfgmig.Service[greetConfig] {
				t.Helper()
				chain := cfgmig.NewChain().
					MustRegister(cfgmig.Step{From: 0, To: 1, Transform: func(map[string]any) (map[string]any, error) {
						panic("transform bug")
					}})

				return cfgmig.NewService(1, defaultGreetConfig, cfgmig.WithChain(chain))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := tt.service(t)
			path := writeConfig(t, tt.content)

			// 任何失败都不允许向调用方扩散
			var result cfgmig.Result[greetConfig]
			require.NotPanics(t, func() { result = svc.Load(path) })

			require.NotNil(t, result.Config)
			assert.True(t, result.WasCreated)
			assert.False(t, result.WasMigrated)
			assert.Equal(t, defaultGreetConfig(), *result.Config)
		})
	}
}

func TestService_Load_MultiHop(t *testing.T) {
	chain := cfgmig.NewChain().
		MustRegister(cfgmig.Step{From: 0, To: 1, Transform: cfgmig.AddField("greeting", "Hello")}).
		MustRegister(cfgmig.Step{From: 1, To: 2, Transform: cfgmig.RenameField("nick", "name")})

	svc := cfgmig.NewService(2, defaultGreetConfig, cfgmig.WithChain(chain))
	path := writeConfig(t, `{"Version": 0, "nick": "Bob"}`)

	result := svc.Load(path)

	assert.True(t, result.WasMigrated)
	assert.Equal(t, cfgmig.Version(0), result.OriginalVersion)
	assert.Equal(t, "Bob", result.Config.Name)
	assert.Equal(t, "Hello", result.Config.Greeting)
}

func TestService_Accessors(t *testing.T) {
	svc := newGreetService(t)

	assert.Equal(t, cfgmig.Version(1), svc.Target())
	assert.Len(t, svc.Chain().Steps(), 1)
}
