// Package args 解析 apply 命令的参数文件
//
// 参数文件支持两种格式：
//
//	# YAML / JSON 映射（ansible 传入的 JSON 参数文件也属于这一种）
//	{"dest": "/tmp/testimg", "size": "5", "format": "raw", "_ansible_check_mode": false}
//
//	# key=value 形式
//	dest=/tmp/testimg size=5 format=raw
package args

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jimyag/qimg/internal/qimg/entity"
	"github.com/kballard/go-shellquote"
	"gopkg.in/yaml.v3"
)

// Load 读取并解析参数文件
func Load(path string) (*entity.ReconcileRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read args file: %w", err)
	}
	return Parse(data)
}

// Parse 解析参数文件内容
func Parse(data []byte) (*entity.ReconcileRequest, error) {
	req := &entity.ReconcileRequest{}
	if len(bytes.TrimSpace(data)) == 0 {
		return req, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		// key=value 中带引号的值可能不是合法的 YAML
		return parseKeyValue(string(data))
	}
	if len(doc.Content) == 1 && doc.Content[0].Kind == yaml.MappingNode {
		mapping := doc.Content[0]
		for i := 0; i+1 < len(mapping.Content); i += 2 {
			if err := checkKey(mapping.Content[i].Value); err != nil {
				return nil, err
			}
		}
		if err := mapping.Decode(req); err != nil {
			return nil, fmt.Errorf("decode args: %w", err)
		}
		return req, nil
	}
	return parseKeyValue(string(data))
}

func parseKeyValue(s string) (*entity.ReconcileRequest, error) {
	words, err := shellquote.Split(s)
	if err != nil {
		return nil, fmt.Errorf("split args: %w", err)
	}

	req := &entity.ReconcileRequest{}
	for _, word := range words {
		key, value, ok := strings.Cut(word, "=")
		if !ok {
			return nil, fmt.Errorf("argument %q is not in key=value form", word)
		}
		if err := setField(req, key, value); err != nil {
			return nil, err
		}
	}
	return req, nil
}

// checkKey 拒绝未知参数，其余 _ansible_ 内部参数忽略
func checkKey(key string) error {
	switch key {
	case "dest", "format", "options", "size", "state",
		"allow_shrink", "check_mode", "_ansible_check_mode":
		return nil
	}
	if strings.HasPrefix(key, "_ansible_") {
		return nil
	}
	return fmt.Errorf("unsupported parameter %s", key)
}

func setField(req *entity.ReconcileRequest, key, value string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	switch key {
	case "dest":
		req.Dest = value
	case "format":
		req.Format = &value
	case "options":
		req.Options = &value
	case "size":
		req.Size = value
	case "state":
		req.State = value
	case "allow_shrink", "check_mode", "_ansible_check_mode":
		b, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("argument %s: %w", key, err)
		}
		switch key {
		case "allow_shrink":
			req.AllowShrink = b
		case "check_mode":
			req.CheckMode = b
		default:
			req.AnsibleCheckMode = b
		}
	}
	return nil
}

// parseBool 除了 strconv 支持的格式，还接受 yes/no/on/off
func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "y", "on":
		return true, nil
	case "no", "n", "off":
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid boolean %q", s)
	}
	return b, nil
}
