package cfgmig_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/260830-go-pkg-cfgmig/pkg/cfgmig"
)

// identity 返回输入文档本身的只读视图，供不关心转换内容的用例使用。
func identity(doc map[string]any) (map[string]any, error) {
	return doc, nil
}

func TestChain_Register(t *testing.T) {
	tests := []struct {
		name    string
		steps   []cfgmig.Step
		wantErr error
	}{
		{
			name: "sequential steps",
			steps: []cfgmig.Step{
				{From: 0, To: 1, Transform: identity},
				{From: 1, To: 2, Transform: identity},
			},
		},
		{
			name: "out of order registration is sorted",
			steps: []cfgmig.Step{
				{From: 2, To: 3, Transform: identity},
				{From: 0, To: 1, Transform: identity},
				{From: 1, To: 2, Transform: identity},
			},
		},
		{
			name: "rejects equal versions",
			steps: []cfgmig.Step{
				{From: 1, To: 1, Transform: identity},
			},
			wantErr: cfgmig.ErrInvalidStep,
		},
		{
			name: "rejects backward step",
			steps: []cfgmig.Step{
				{From: 2, To: 1, Transform: identity},
			},
			wantErr: cfgmig.ErrInvalidStep,
		},
		{
			name: "rejects nil transform",
			steps: []cfgmig.Step{
				{From: 0, To: 1},
			},
			wantErr: cfgmig.ErrInvalidStep,
		},
		{
			name: "rejects duplicate pair",
			steps: []cfgmig.Step{
				{From: 0, To: 1, Transform: identity},
				{From: 0, To: 1, Transform: identity},
			},
			wantErr: cfgmig.ErrDuplicateStep,
		},
		{
			name: "rejects branching from same version",
			steps: []cfgmig.Step{
				{From: 0, To: 1, Transform: identity},
				{From: 0, To: 2, Transform: identity},
			},
			wantErr: cfgmig.ErrDuplicateStep,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain := cfgmig.NewChain()
			var err error
			for _, step := range tt.steps {
				err = chain.Register(step)
				if err != nil {
					break
				}
			}

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}
			require.NoError(t, err)

			steps := chain.Steps()
			require.Len(t, steps, len(tt.steps))
			for i := 1; i < len(steps); i++ {
				assert.Less(t, steps[i-1].From, steps[i].From, "steps must stay sorted by From")
			}
		})
	}
}

func TestChain_CanMigrate(t *testing.T) {
	chain := cfgmig.NewChain().
		MustRegister(cfgmig.Step{From: 0, To: 1, Transform: identity}).
		MustRegister(cfgmig.Step{From: 1, To: 2, Transform: identity}).
		MustRegister(cfgmig.Step{From: 3, To: 5, Transform: identity})

	tests := []struct {
		name   string
		source cfgmig.Version
		target cfgmig.Version
		want   bool
	}{
		{name: "same version is always reachable", source: 2, target: 2, want: true},
		{name: "single hop", source: 0, target: 1, want: true},
		{name: "multi hop", source: 0, target: 2, want: true},
		{name: "backward is never reachable", source: 2, target: 0, want: false},
		{name: "gap in chain", source: 0, target: 3, want: false},
		{name: "overshooting step does not land", source: 3, target: 4, want: false},
		{name: "multi version step lands exactly", source: 3, target: 5, want: true},
		{name: "unknown source", source: 7, target: 9, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, chain.CanMigrate(tt.source, tt.target))
		})
	}
}

func TestChain_Apply_Idempotence(t *testing.T) {
	chain := cfgmig.NewChain().
		MustRegister(cfgmig.Step{From: 0, To: 1, Transform: cfgmig.AddField("greeting", "Hello")})

	doc := map[string]any{"name": "Bob"}

	for _, v := range []cfgmig.Version{0, 1, 9} {
		out, err := chain.Apply(doc, v, v)
		require.NoError(t, err)
		assert.Equal(t, doc, out, "no-op migration must return the input unchanged")
	}
}

func TestChain_Apply_Composition(t *testing.T) {
	step01 := cfgmig.AddField("greeting", "Hello")
	step12 := cfgmig.RenameField("name", "display_name")

	chain := cfgmig.NewChain().
		MustRegister(cfgmig.Step{From: 0, To: 1, Transform: step01}).
		MustRegister(cfgmig.Step{From: 1, To: 2, Transform: step12})

	doc := map[string]any{"name": "Bob"}

	chained, err := chain.Apply(doc, 0, 2)
	require.NoError(t, err)

	// 手动依次应用两个步骤，结果必须与链式执行一致
	manual, err := step01(doc)
	require.NoError(t, err)
	manual, err = step12(manual)
	require.NoError(t, err)

	assert.Equal(t, manual, chained)
	assert.Equal(t, map[string]any{"name": "Bob"}, doc, "input document must not be mutated")
}

func TestChain_Apply_Failures(t *testing.T) {
	boom := errors.New("boom")
	chain := cfgmig.NewChain().
		MustRegister(cfgmig.Step{From: 0, To: 1, Transform: identity}).
		MustRegister(cfgmig.Step{From: 1, To: 2, Transform: func(map[string]any) (map[string]any, error) {
			return nil, boom
		}})

	t.Run("missing step aborts with no migration path", func(t *testing.T) {
		_, err := chain.Apply(map[string]any{}, 0, 5)
		assert.ErrorIs(t, err, cfgmig.ErrNoMigrationPath)
	})

	t.Run("backward execution aborts", func(t *testing.T) {
		_, err := chain.Apply(map[string]any{}, 2, 0)
		assert.ErrorIs(t, err, cfgmig.ErrNoMigrationPath)
	})

	t.Run("failing transform wraps step versions and cause", func(t *testing.T) {
		_, err := chain.Apply(map[string]any{}, 0, 2)
		require.Error(t, err)

		var stepErr *cfgmig.StepError
		require.ErrorAs(t, err, &stepErr)
		assert.Equal(t, cfgmig.Version(1), stepErr.From)
		assert.Equal(t, cfgmig.Version(2), stepErr.To)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("nil document from transform is a step failure", func(t *testing.T) {
		nilChain := cfgmig.NewChain().
			MustRegister(cfgmig.Step{From: 0, To: 1, Transform: func(map[string]any) (map[string]any, error) {
				return nil, nil
			}})

		_, err := nilChain.Apply(map[string]any{}, 0, 1)
		var stepErr *cfgmig.StepError
		require.ErrorAs(t, err, &stepErr)
	})
}
