package metrics

import "github.com/dep2p/go-streamio/pkg/interfaces"

// Nop 丢弃所有指标
type Nop struct{}

var _ interfaces.Reporter = Nop{}

func (Nop) StreamOpened(string)    {}
func (Nop) StreamClosed(string)    {}
func (Nop) BytesFilled(int)        {}
func (Nop) BytesFlushed(int)       {}
func (Nop) IncompleteFlush()       {}
func (Nop) ReadinessSignal(string) {}
func (Nop) IdleExpired()           {}
func (Nop) TeardownFailed(string)  {}

// OrNop r 为 nil 时返回 Nop
func OrNop(r interfaces.Reporter) interfaces.Reporter {
	if r == nil {
		return Nop{}
	}
	return r
}
