package entity

import (
	"fmt"

	"github.com/jimyag/qimg/pkg/apierror"
	"github.com/jinzhu/copier"
)

const (
	// DefaultFormat 默认镜像格式
	DefaultFormat = "qcow2"
	// DefaultOptions 默认的 qemu-img create -o 选项
	DefaultOptions = "preallocation=metadata"
)

// ImageState 期望的镜像状态
type ImageState string

const (
	StatePresent ImageState = "present"
	StateAbsent  ImageState = "absent"
	StateResize  ImageState = "resize"
)

// Valid 判断状态是否合法
func (s ImageState) Valid() bool {
	switch s {
	case StatePresent, StateAbsent, StateResize:
		return true
	}
	return false
}

// Action 本次 reconcile 执行（或 check 模式下将要执行）的变更动作
type Action string

const (
	ActionNone   Action = ""
	ActionCreate Action = "create"
	ActionResize Action = "resize"
	ActionRemove Action = "remove"
)

// ImageSpec 描述一个镜像文件的期望状态
type ImageSpec struct {
	// Dest 镜像文件路径，不能为空
	Dest string
	// Format 镜像格式，默认 qcow2
	Format string
	// Options 创建时透传给 -o 的选项，为空时不传 -o
	Options string
	// Size 镜像大小，present 和 resize 状态下必填
	Size string
	// State 期望状态，默认 present
	State ImageState
	// AllowShrink 允许 resize 时缩小镜像（追加 --shrink）
	AllowShrink bool
}

// Validate 检查必填字段
// 返回的错误都是 apierror.ErrInvalidInput 类型
func (s ImageSpec) Validate() error {
	if s.Dest == "" {
		return apierror.WrapError(apierror.ErrInvalidInput, "dest is required", nil)
	}
	if !s.State.Valid() {
		return apierror.WrapError(apierror.ErrInvalidInput,
			fmt.Sprintf("value of state must be one of: present, absent, resize, got: %s", s.State), nil)
	}
	if s.Size == "" {
		switch s.State {
		case StatePresent:
			return apierror.WrapError(apierror.ErrInvalidInput, "No size defined, creating a disk image requires a size", nil)
		case StateResize:
			return apierror.WrapError(apierror.ErrInvalidInput, "No size defined, resizing a disk image requires a size", nil)
		}
	}
	return nil
}

// ReconcileRequest 是 CLI 参数文件和 HTTP 接口共用的请求结构
type ReconcileRequest struct {
	Dest string `json:"dest" yaml:"dest"`
	// Format 和 Options 使用指针区分"未设置"和"显式设置为空"
	Format      *string `json:"format,omitempty" yaml:"format,omitempty"`
	Options     *string `json:"options,omitempty" yaml:"options,omitempty"`
	Size        string  `json:"size,omitempty" yaml:"size,omitempty"`
	State       string  `json:"state,omitempty" yaml:"state,omitempty"`
	AllowShrink bool    `json:"allow_shrink,omitempty" yaml:"allow_shrink,omitempty"`
	CheckMode   bool    `json:"check_mode,omitempty" yaml:"check_mode,omitempty"`

	// AnsibleCheckMode 兼容 ansible 传入的参数文件
	AnsibleCheckMode bool `json:"_ansible_check_mode,omitempty" yaml:"_ansible_check_mode,omitempty"`
}

// IsCheckMode 是否只检查不变更
func (r *ReconcileRequest) IsCheckMode() bool {
	return r.CheckMode || r.AnsibleCheckMode
}

// ToSpec 转换为 ImageSpec 并填充默认值
func (r *ReconcileRequest) ToSpec() (ImageSpec, error) {
	spec := ImageSpec{}
	if err := copier.Copy(&spec, r); err != nil {
		return ImageSpec{}, fmt.Errorf("copy reconcile request: %w", err)
	}

	spec.Format = DefaultFormat
	if r.Format != nil && *r.Format != "" {
		spec.Format = *r.Format
	}
	spec.Options = DefaultOptions
	if r.Options != nil {
		spec.Options = *r.Options
	}
	if r.State == "" {
		spec.State = StatePresent
	} else {
		spec.State = ImageState(r.State)
	}
	return spec, nil
}

// Result 一次 reconcile 的结果
type Result struct {
	Changed bool   `json:"changed"`
	Failed  bool   `json:"failed"`
	Msg     string `json:"msg,omitempty"`
	Action  Action `json:"action,omitempty"`
	RunID   string `json:"run_id,omitempty"`
}
