// Package service 提供镜像状态收敛的业务逻辑
package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"syscall"

	"github.com/jimyag/qimg/internal/qimg/entity"
	"github.com/jimyag/qimg/pkg/apierror"
	"github.com/jimyag/qimg/pkg/idgen"
	"github.com/jimyag/qimg/pkg/qemuimg"
	"github.com/rs/zerolog"
)

// Reconciler 根据 ImageSpec 调用 qemu-img，使镜像文件收敛到期望状态
// 每次调用最多执行一个变更命令（create / resize / 删除文件）
type Reconciler struct {
	qemuImgClient qemuimg.QemuImgClient
	idGen         *idgen.Generator
}

// NewReconciler 创建新的 Reconciler
func NewReconciler(qemuImgClient qemuimg.QemuImgClient) *Reconciler {
	return &Reconciler{
		qemuImgClient: qemuImgClient,
		idGen:         idgen.DefaultGenerator(),
	}
}

// Reconcile 收敛单个镜像
//
// checkOnly 为 true 时只判断是否会发生变更，不执行任何变更命令，也不删除文件；
// Changed 表示"将会变更"。resize 状态下只读的 qemu-img info 仍会执行。
//
// 返回的 Result 总是非 nil，失败时 Failed 为 true，Msg 为错误描述
func (r *Reconciler) Reconcile(ctx context.Context, spec entity.ImageSpec, checkOnly bool) (*entity.Result, error) {
	runID, err := r.idGen.GenerateRunID()
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("Failed to generate run ID")
	}

	logger := zerolog.Ctx(ctx).With().
		Str("run_id", runID).
		Str("dest", spec.Dest).
		Str("state", string(spec.State)).
		Bool("check_mode", checkOnly).
		Logger()
	ctx = logger.WithContext(ctx)

	result := &entity.Result{RunID: runID}

	action, err := r.reconcile(ctx, spec, checkOnly)
	if err != nil {
		logger.Error().Err(err).Msg("Reconcile failed")
		result.Failed = true
		result.Msg = errorMessage(err)
		return result, err
	}

	result.Action = action
	result.Changed = action != entity.ActionNone

	logger.Info().
		Bool("changed", result.Changed).
		Str("action", string(action)).
		Msg("Reconcile finished")
	return result, nil
}

func (r *Reconciler) reconcile(ctx context.Context, spec entity.ImageSpec, checkOnly bool) (entity.Action, error) {
	if err := spec.Validate(); err != nil {
		return entity.ActionNone, err
	}

	switch spec.State {
	case entity.StatePresent:
		return r.ensurePresent(ctx, spec, checkOnly)
	case entity.StateResize:
		return r.ensureSize(ctx, spec, checkOnly)
	case entity.StateAbsent:
		return r.ensureAbsent(ctx, spec, checkOnly)
	}
	// Validate 已经拒绝了未知状态
	return entity.ActionNone, fmt.Errorf("unhandled state %s", spec.State)
}

// ensurePresent 镜像不存在时创建
// 已存在的镜像不检查格式和大小
func (r *Reconciler) ensurePresent(ctx context.Context, spec entity.ImageSpec, checkOnly bool) (entity.Action, error) {
	logger := zerolog.Ctx(ctx)

	exists, err := fileExists(spec.Dest)
	if err != nil {
		return entity.ActionNone, err
	}
	if exists {
		logger.Debug().Msg("Image already exists")
		return entity.ActionNone, nil
	}
	if checkOnly {
		return entity.ActionCreate, nil
	}

	logger.Info().
		Str("format", spec.Format).
		Str("options", spec.Options).
		Str("size", spec.Size).
		Msg("Creating image")

	err = r.qemuImgClient.Create(ctx, qemuimg.CreateOptions{
		Format:  spec.Format,
		Options: spec.Options,
		Path:    spec.Dest,
		Size:    spec.Size,
	})
	if err != nil {
		return entity.ActionNone, apierror.WrapError(apierror.ErrExternalTool,
			fmt.Sprintf("unable to create image %s", spec.Dest), err)
	}
	return entity.ActionCreate, nil
}

// ensureSize 比较当前 virtual size 与期望大小，不一致时 resize
// 期望大小按 qemu-img 的规则换算成字节后再比较，"5M" 与 5242880 视为相同
func (r *Reconciler) ensureSize(ctx context.Context, spec entity.ImageSpec, checkOnly bool) (entity.Action, error) {
	logger := zerolog.Ctx(ctx)

	requested, relative, err := qemuimg.ParseSize(spec.Size)
	if err != nil {
		return entity.ActionNone, apierror.WrapError(apierror.ErrInvalidInput,
			fmt.Sprintf("invalid size %q", spec.Size), err)
	}

	current, err := r.qemuImgClient.VirtualSize(ctx, spec.Dest)
	if err != nil {
		return entity.ActionNone, apierror.WrapError(apierror.ErrExternalTool,
			fmt.Sprintf("unable to read virtual disk size of %s", spec.Dest), err)
	}

	target := requested
	if relative {
		target = current + requested
	}

	logger.Debug().
		Int64("current_bytes", current).
		Int64("target_bytes", target).
		Msg("Compared virtual size")

	if target == current {
		return entity.ActionNone, nil
	}
	if checkOnly {
		return entity.ActionResize, nil
	}

	shrink := spec.AllowShrink && target < current
	logger.Info().
		Str("size", spec.Size).
		Bool("shrink", shrink).
		Msg("Resizing image")

	if err := r.qemuImgClient.Resize(ctx, spec.Dest, spec.Size, shrink); err != nil {
		return entity.ActionNone, apierror.WrapError(apierror.ErrExternalTool,
			fmt.Sprintf("unable to resize image %s", spec.Dest), err)
	}
	return entity.ActionResize, nil
}

// ensureAbsent 镜像存在时删除
func (r *Reconciler) ensureAbsent(ctx context.Context, spec entity.ImageSpec, checkOnly bool) (entity.Action, error) {
	info, err := os.Stat(spec.Dest)
	if errors.Is(err, fs.ErrNotExist) {
		return entity.ActionNone, nil
	}
	if err != nil {
		return entity.ActionNone, fmt.Errorf("stat %s: %w", spec.Dest, err)
	}
	// 只删除文件，目录交给调用方处理
	if info.IsDir() {
		return entity.ActionNone, fmt.Errorf("remove image %s: %w", spec.Dest, syscall.EISDIR)
	}
	if checkOnly {
		return entity.ActionRemove, nil
	}

	zerolog.Ctx(ctx).Info().Msg("Removing image")
	if err := os.Remove(spec.Dest); err != nil {
		return entity.ActionNone, fmt.Errorf("remove image %s: %w", spec.Dest, err)
	}
	return entity.ActionRemove, nil
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat %s: %w", path, err)
}

// errorMessage 返回面向调用方的错误描述
func errorMessage(err error) string {
	var apiErr *apierror.Error
	if errors.As(err, &apiErr) {
		if apiErr.RawError != nil {
			return fmt.Sprintf("%s: %v", apiErr.Message, apiErr.RawError)
		}
		return apiErr.Message
	}
	return err.Error()
}
