package qemuimg

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/docker/go-units"
)

// ParseVirtualSize 从 qemu-img info 的文本输出中解析 virtual size
//
// 输出格式：
//
//	virtual size: 5.0M (5242880 bytes)
//	virtual size: 5 MiB (5242880 bytes)
//
// 取括号后第一个字段作为字节数
func ParseVirtualSize(output string) (int64, error) {
	for _, line := range strings.Split(output, "\n") {
		if !strings.Contains(line, "virtual size") {
			continue
		}
		_, rest, ok := strings.Cut(line, "(")
		if !ok {
			continue
		}
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			continue
		}
		size, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse virtual size %q: %w", fields[0], err)
		}
		return size, nil
	}
	return 0, ErrVirtualSizeNotFound
}

// sizeSuffixes qemu-img 接受的单位后缀（大小写不敏感）
var sizeSuffixes = map[byte]int64{
	'B': 1,
	'K': units.KiB,
	'M': units.MiB,
	'G': units.GiB,
	'T': units.TiB,
	'P': units.PiB,
	'E': units.PiB * 1024,
}

// ParseSize 把 qemu-img 风格的大小字符串转换为字节数
// 后缀按 1024 进制处理（B/K/M/G/T/P/E），无后缀表示字节
// 小数只能与 K 及以上的后缀一起使用，结果向下取整
// 以 + 或 - 开头时 relative 为 true，bytes 带符号
func ParseSize(size string) (bytes int64, relative bool, err error) {
	s := size
	sign := int64(1)
	switch {
	case strings.HasPrefix(s, "+"):
		relative = true
		s = s[1:]
	case strings.HasPrefix(s, "-"):
		relative = true
		sign = -1
		s = s[1:]
	}

	n, err := parseUnsignedSize(s)
	if err != nil {
		return 0, false, fmt.Errorf("invalid size %q: %w", size, err)
	}
	return sign * n, relative, nil
}

func parseUnsignedSize(s string) (int64, error) {
	if s == "" {
		return 0, errors.New("empty size")
	}

	num, mul := s, int64(1)
	if m, ok := sizeSuffixes[upper(s[len(s)-1])]; ok {
		num, mul = s[:len(s)-1], m
	}

	whole, frac, hasFrac := strings.Cut(num, ".")
	if !isDigits(whole) || (hasFrac && !isDigits(frac)) {
		return 0, fmt.Errorf("malformed number %q", num)
	}
	if hasFrac && mul == 1 {
		return 0, errors.New("fractional bytes are not allowed")
	}

	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || n > math.MaxInt64/mul {
		return 0, errors.New("size is too large")
	}
	n *= mul

	if hasFrac {
		f, err := strconv.ParseFloat("0."+frac, 64)
		if err != nil {
			return 0, fmt.Errorf("malformed number %q", num)
		}
		extra := int64(f * float64(mul))
		if n > math.MaxInt64-extra {
			return 0, errors.New("size is too large")
		}
		n += extra
	}
	return n, nil
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
