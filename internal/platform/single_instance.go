package platform

import (
	"bufio"
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// ErrAlreadyRunning indicates another timer already owns the data directory.
var ErrAlreadyRunning = errors.New("instance already running")

const (
	showRequest    = "show"
	handoffTimeout = 2 * time.Second
)

// InstanceGuard keeps a loopback port bound while a desktop timer runs
// against one data directory. Two timers writing the same settings store
// would overwrite each other, so the port is derived from the directory.
//
// The guard also accepts "show" requests from later launches and hands
// them to the callback set with OnShow.
type InstanceGuard struct {
	listener net.Listener
	address  string

	mu     sync.Mutex
	onShow func()
	done   chan struct{}
}

// AcquireSingleInstance binds the lock port for appName and dataDir.
func AcquireSingleInstance(appName, dataDir string) (*InstanceGuard, error) {
	address := LockAddress(appName, dataDir)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyRunning, address)
	}
	guard := &InstanceGuard{listener: listener, address: address, done: make(chan struct{})}
	go guard.serve()
	return guard, nil
}

// LockAddress returns the loopback address guarding dataDir.
func LockAddress(appName, dataDir string) string {
	return fmt.Sprintf("127.0.0.1:%d", lockPort(appName, dataDir))
}

// RequestShow asks the timer holding the lock for dataDir to bring its
// window forward.
func RequestShow(appName, dataDir string) error {
	conn, err := net.DialTimeout("tcp", LockAddress(appName, dataDir), handoffTimeout)
	if err != nil {
		return fmt.Errorf("contact running timer: %w", err)
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(handoffTimeout))
	if _, err := fmt.Fprintln(conn, showRequest); err != nil {
		return fmt.Errorf("send show request: %w", err)
	}
	return nil
}

// OnShow sets the callback run for each show request. It runs on the
// guard's goroutine.
func (guard *InstanceGuard) OnShow(callback func()) {
	guard.mu.Lock()
	defer guard.mu.Unlock()
	guard.onShow = callback
}

// Release frees the lock and stops serving show requests.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	err := guard.listener.Close()
	<-guard.done
	if errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}

// Address returns the bound address.
func (guard *InstanceGuard) Address() string {
	if guard == nil {
		return ""
	}
	return guard.address
}

func (guard *InstanceGuard) serve() {
	defer close(guard.done)
	for {
		conn, err := guard.listener.Accept()
		if err != nil {
			return
		}
		guard.handle(conn)
	}
}

func (guard *InstanceGuard) handle(conn net.Conn) {
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(handoffTimeout))
	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil || strings.TrimSpace(line) != showRequest {
		return
	}
	guard.mu.Lock()
	callback := guard.onShow
	guard.mu.Unlock()
	if callback != nil {
		callback()
	}
}

func lockPort(appName, dataDir string) int {
	const (
		minPort = 20000
		maxPort = 39999
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	_, _ = hash.Write([]byte{0})
	_, _ = hash.Write([]byte(filepath.Clean(dataDir)))
	return minPort + int(hash.Sum32()%uint32(maxPort-minPort+1))
}
