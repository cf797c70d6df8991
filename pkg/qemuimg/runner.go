package qemuimg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// RunResult 是一次子进程调用的结果
type RunResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner 抽象子进程的执行
// 只有进程无法启动（命令不存在、context 取消等）时才返回 error，
// 非 0 退出码通过 RunResult.ExitCode 返回，由调用方决定如何处理
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (*RunResult, error)
}

// ExecRunner 使用 os/exec 执行真实的命令
type ExecRunner struct{}

// Run 实现 Runner 接口
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (*RunResult, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", name, err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("run %s: %w", name, err)
		}
		// context 超时或取消时进程被 kill，此时也当作启动失败处理
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("run %s: %w", name, ctxErr)
		}
	}

	return &RunResult{
		ExitCode: cmd.ProcessState.ExitCode(),
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}, nil
}
