package binary

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrushIntents(t *testing.T) {
	tests := []struct {
		name  string
		build func(Executable) Executable
		want  []string
	}{
		{
			name:  "install",
			build: func(e Executable) Executable { return e.Install([]string{"foo", "bar"}) },
			want:  []string{"-r", "/srv/web", "pm-enable", "-y", "foo", "bar"},
		},
		{
			name:  "uninstall",
			build: func(e Executable) Executable { return e.Uninstall([]string{"foo"}) },
			want:  []string{"-r", "/srv/web", "pm-uninstall", "-y", "foo"},
		},
		{
			name:  "cache rebuild",
			build: func(e Executable) Executable { return e.CacheRebuild() },
			want:  []string{"-r", "/srv/web", "cache-rebuild"},
		},
		{
			name:  "update database",
			build: func(e Executable) Executable { return e.UpdateDatabase(false) },
			want:  []string{"-r", "/srv/web", "updatedb", "cache-clear=false", "entity-updates=true", "-y"},
		},
		{
			name:  "update database with cache clear",
			build: func(e Executable) Executable { return e.UpdateDatabase(true) },
			want:  []string{"-r", "/srv/web", "updatedb", "cache-clear=true", "entity-updates=true", "-y"},
		},
		{
			name:  "connection check",
			build: func(e Executable) Executable { return e.HasDatabaseConnection() },
			want:  []string{"-r", "/srv/web", "status", "bootstrap"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exe := NewDrush("drush", &RecordingRunner{}).SetRoot("/srv/web")
			assert.Equal(t, tt.want, tt.build(exe).Args())
		})
	}
}

func TestConsoleIntents(t *testing.T) {
	tests := []struct {
		name  string
		build func(Executable) Executable
		want  []string
	}{
		{
			name:  "install",
			build: func(e Executable) Executable { return e.Install([]string{"foo", "bar"}) },
			want:  []string{"--root=/srv/web", "module:install", "--yes", "foo", "bar"},
		},
		{
			name:  "uninstall",
			build: func(e Executable) Executable { return e.Uninstall([]string{"foo"}) },
			want:  []string{"--root=/srv/web", "module:uninstall", "--yes", "foo"},
		},
		{
			name:  "cache rebuild",
			build: func(e Executable) Executable { return e.CacheRebuild() },
			want:  []string{"--root=/srv/web", "cache:rebuild", "all"},
		},
		{
			name:  "update database",
			build: func(e Executable) Executable { return e.UpdateDatabase(true) },
			want:  []string{"--root=/srv/web", "update:execute", "--yes"},
		},
		{
			name:  "connection check",
			build: func(e Executable) Executable { return e.HasDatabaseConnection() },
			want:  []string{"--root=/srv/web", "site:status"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exe := NewConsole("drupal", &RecordingRunner{}).SetRoot("/srv/web")
			assert.Equal(t, tt.want, tt.build(exe).Args())
		})
	}
}

func TestModuleParamsSkipBlankNames(t *testing.T) {
	for _, ctor := range []Constructor{NewDrush, NewConsole} {
		exe := ctor("tool", &RecordingRunner{})
		args := exe.Install([]string{"", "a", "  ", "b", "", "c"}).Args()
		assert.Equal(t, []string{"a", "b", "c"}, args[len(args)-3:])

		exe = ctor("tool", &RecordingRunner{})
		args = exe.Uninstall([]string{"c", "", "b", "a"}).Args()
		assert.Equal(t, []string{"c", "b", "a"}, args[len(args)-3:])
	}
}

func TestExecuteResetsCommandBetweenCalls(t *testing.T) {
	runner := &RecordingRunner{}
	exe := NewDrush("vendor/bin/drush", runner).SetRoot("/srv/web")

	_, err := exe.Install([]string{"foo"}).Execute()
	require.NoError(t, err)
	_, err = exe.Install([]string{"bar"}).Execute()
	require.NoError(t, err)

	require.Len(t, runner.Calls, 2)
	assert.Equal(t, "vendor/bin/drush", runner.Calls[0].Name)
	assert.Equal(t, []string{"-r", "/srv/web", "pm-enable", "-y", "foo"}, runner.Calls[0].Args)
	assert.Equal(t, []string{"-r", "/srv/web", "pm-enable", "-y", "bar"}, runner.Calls[1].Args)
	assert.Equal(t, []string{"-r", "/srv/web"}, exe.Args())
}

func TestExecuteWithoutRootResetsToEmpty(t *testing.T) {
	runner := &RecordingRunner{}
	exe := NewDrush("drush", runner)

	_, err := exe.CacheRebuild().Execute()
	require.NoError(t, err)
	assert.Empty(t, exe.Args())
}

func TestExecuteFailureReturnsExecutionErrorAndResets(t *testing.T) {
	boom := errors.New("exit status 1")
	runner := &RecordingRunner{Respond: func(Call) ([]string, error) {
		return []string{"partial"}, boom
	}}
	exe := NewDrush("drush", runner).SetRoot("/srv/web")

	lines, err := exe.Uninstall([]string{"foo"}).Execute()
	require.Error(t, err)
	assert.Nil(t, lines)

	var execErr *ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, "drush", execErr.Executable)
	assert.Equal(t, []string{"-r", "/srv/web", "pm-uninstall", "-y", "foo"}, execErr.Args)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "drush -r /srv/web pm-uninstall -y foo")

	assert.Equal(t, []string{"-r", "/srv/web"}, exe.Args())
	runner.Respond = nil
	_, err = exe.CacheRebuild().Execute()
	require.NoError(t, err)
	assert.Equal(t, []string{"-r", "/srv/web", "cache-rebuild"}, runner.Calls[1].Args)
}

func TestExecuteReturnsOutputLines(t *testing.T) {
	runner := &RecordingRunner{Respond: func(Call) ([]string, error) {
		return []string{"one", "two"}, nil
	}}
	lines, err := NewConsole("drupal", runner).CacheRebuild().Execute()
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, lines)
}

func TestHasConnection(t *testing.T) {
	tests := []struct {
		name   string
		output []string
		err    error
		want   bool
	}{
		{name: "successful marker", output: []string{" Drupal bootstrap : Successful"}, want: true},
		{name: "lowercase marker", output: []string{"bootstrap successful"}, want: true},
		{name: "upper marker", output: []string{"SUCCESSFUL"}, want: true},
		{name: "marker only on second line", output: []string{"Drupal bootstrap :", "Successful"}, want: false},
		{name: "no marker", output: []string{"Drupal bootstrap : failed"}, want: false},
		{name: "empty output", output: nil, want: false},
		{name: "execution failure", output: []string{"Successful"}, err: errors.New("boom"), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &RecordingRunner{Respond: func(Call) ([]string, error) {
				return tt.output, tt.err
			}}
			exe := NewDrush("drush", runner).SetRoot("/srv/web")
			assert.Equal(t, tt.want, HasConnection(exe))
			require.Len(t, runner.Calls, 1)
			assert.Equal(t, []string{"-r", "/srv/web", "status", "bootstrap"}, runner.Calls[0].Args)
			assert.Equal(t, []string{"-r", "/srv/web"}, exe.Args())
		})
	}
}

func TestNameAndString(t *testing.T) {
	drush := NewDrush("/opt/my bin/drush", &RecordingRunner{}).SetRoot("/srv/web")
	assert.Equal(t, IDDrush, drush.Name())
	assert.Equal(t, "'/opt/my bin/drush' -r /srv/web cache-rebuild", drush.CacheRebuild().String())

	console := NewConsole("drupal", &RecordingRunner{})
	assert.Equal(t, IDDrupal, console.Name())
}
