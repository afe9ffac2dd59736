package llm

import (
	"context"
	"net"
	"net/url"

	"github.com/pkg/errors"
)

// 供应商调用失败按来源分类后返回，上层只依赖哨兵错误做映射，
// 不对错误文案做子串匹配
var (
	ErrProviderTimeout = errors.New("llm provider call timed out")
	ErrProviderNetwork = errors.New("llm provider unreachable")
	ErrProviderFailed  = errors.New("llm provider request failed")

	ErrMalformedResponse  = errors.New("llm response is not valid json")
	ErrIncompleteResponse = errors.New("llm response missing required prediction fields")
)

func classifyProviderError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errors.Wrap(ErrProviderTimeout, err.Error())
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return errors.Wrap(ErrProviderTimeout, err.Error())
		}
		return errors.Wrap(ErrProviderNetwork, err.Error())
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return errors.Wrap(ErrProviderNetwork, err.Error())
	}

	return errors.Wrap(ErrProviderFailed, err.Error())
}
