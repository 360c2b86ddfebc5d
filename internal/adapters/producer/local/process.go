package local

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/bnema/yamcl/internal/domain"
	"github.com/bnema/yamcl/internal/logging"
)

type runFunc func(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)

type process interface {
	Wait() error
}

type startFunc func(dir, name string, args ...string) (process, error)

type exitCoder interface {
	ExitCode() int
}

// ProbeRuntime runs `path args... -version` and returns the version banner.
// Java prints it on stderr; stdout is used when stderr is empty.
func (p *Producer) ProbeRuntime(ctx context.Context, path string, args []string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	argv := append(append([]string{}, args...), "-version")
	stdout, stderr, err := p.probe(ctx, path, argv...)
	if err != nil {
		if stderr == "" {
			return "", fmt.Errorf("run %s -version: %w", path, err)
		}
		return "", fmt.Errorf("run %s -version: %w: %s", path, err, stderr)
	}

	if stderr != "" {
		return stderr, nil
	}

	return stdout, nil
}

// Launch starts the runtime in the instance's game directory with the
// runtime's JVM args followed by the instance's launch_args. It returns once
// the process has started; exit is reported through the status subscription.
func (p *Producer) Launch(ctx context.Context, req domain.LaunchRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	instance := req.Instance
	meta, err := readMetadata(instance.Path)
	if err != nil {
		return fmt.Errorf("read instance metadata: %w", err)
	}
	if len(meta.LaunchArgs) == 0 {
		return fmt.Errorf("%w in %s", errNoLaunchArgs, MetadataFileName)
	}

	dir := instance.MinecraftPath
	if dir == "" {
		dir = instance.Path
	}
	args := append(req.Runtime.JVMArgs(), meta.LaunchArgs...)

	log := logging.FromContext(ctx).With().Str("instance", instance.ID).Logger()
	log.Info().Str("runtime", req.Runtime.Path).Strs("args", args).Str("dir", dir).Msg("launching instance")

	proc, err := p.start(dir, req.Runtime.Path, args...)
	if err != nil {
		return fmt.Errorf("start %s: %w", req.Runtime.Path, err)
	}

	p.publish(domain.LaunchStatus{InstanceID: instance.ID, Text: "Instance launched", Status: domain.NotificationRunning})

	go func() {
		status := exitStatus(instance.ID, proc.Wait())
		log.Info().Str("status", string(status.Status)).Msg(status.Text)
		p.publish(status)
	}()

	return nil
}

func exitStatus(instanceID string, err error) domain.LaunchStatus {
	if err == nil {
		return domain.LaunchStatus{InstanceID: instanceID, Text: "Instance exited successfully.", Status: domain.NotificationSuccess}
	}

	var coded exitCoder
	if errors.As(err, &coded) {
		return domain.LaunchStatus{
			InstanceID: instanceID,
			Text:       fmt.Sprintf("Instance crashed with code %d", coded.ExitCode()),
			Status:     domain.NotificationError,
		}
	}

	return domain.LaunchStatus{InstanceID: instanceID, Text: fmt.Sprintf("Instance failed: %s", err), Status: domain.NotificationError}
}

func runCommand(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), strings.TrimSpace(stderr.String()), err
}

// startCommand detaches the game from the caller's context so it keeps
// running if the launching command is interrupted.
func startCommand(dir, name string, args ...string) (process, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	return cmd, nil
}
