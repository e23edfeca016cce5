package launcher

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/pkg/browser"

	"github.com/rl1809/kaos-order/internal/port"
)

var (
	_ port.Launcher = (*BrowserLauncher)(nil)
	_ port.Notifier = (*WriterNotifier)(nil)
)

// BrowserLauncher opens URLs with the desktop's default browser.
type BrowserLauncher struct {
	open func(string) error
}

func NewBrowserLauncher() *BrowserLauncher {
	return &BrowserLauncher{open: browser.OpenURL}
}

func (l *BrowserLauncher) Open(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := l.open(url); err != nil {
		return fmt.Errorf("open browser: %w", err)
	}
	return nil
}

// WriterNotifier prints notices to a terminal or log stream.
type WriterNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{w: w}
}

func (n *WriterNotifier) Notify(_ context.Context, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintln(n.w, message)
}
