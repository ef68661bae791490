package alert

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

const cueSampleRate = 44100

type tone struct {
	start     float64
	frequency float64
}

// Three ascending notes of a C major chord.
var completionCue = []tone{
	{start: 0, frequency: 523.25},
	{start: 0.15, frequency: 659.25},
	{start: 0.3, frequency: 783.99},
}

const (
	toneLength = 0.4
	attack     = 0.05
	peakGain   = 0.3
	floorGain  = 0.01
)

// RenderCue synthesises the completion cue as mono 16-bit PCM samples.
func RenderCue(sampleRate int) []int16 {
	last := completionCue[len(completionCue)-1]
	total := int(math.Ceil((last.start + toneLength) * float64(sampleRate)))
	mix := make([]float64, total)

	for _, note := range completionCue {
		offset := int(note.start * float64(sampleRate))
		length := int(toneLength * float64(sampleRate))
		for i := 0; i < length && offset+i < total; i++ {
			t := float64(i) / float64(sampleRate)
			mix[offset+i] += envelope(t) * math.Sin(2*math.Pi*note.frequency*t)
		}
	}

	samples := make([]int16, total)
	for i, value := range mix {
		if value > 1 {
			value = 1
		} else if value < -1 {
			value = -1
		}
		samples[i] = int16(value * math.MaxInt16)
	}
	return samples
}

// envelope ramps linearly to the peak during the attack, then decays
// exponentially to the floor at the end of the tone.
func envelope(t float64) float64 {
	if t < attack {
		return peakGain * t / attack
	}
	if t >= toneLength {
		return 0
	}
	progress := (t - attack) / (toneLength - attack)
	return peakGain * math.Pow(floorGain/peakGain, progress)
}

// EncodeWAV wraps mono 16-bit samples in a RIFF/WAVE container.
func EncodeWAV(samples []int16, sampleRate int) []byte {
	var buf bytes.Buffer
	dataSize := uint32(len(samples) * 2)

	buf.WriteString("RIFF")
	_ = binary.Write(&buf, binary.LittleEndian, 36+dataSize)
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*2))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(2))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	_ = binary.Write(&buf, binary.LittleEndian, dataSize)
	_ = binary.Write(&buf, binary.LittleEndian, samples)
	return buf.Bytes()
}

// CommandPlayer plays the cue through an external audio command. The WAV
// file is rendered on first use and reused for the life of the player.
type CommandPlayer struct {
	command []string
	dir     string

	once    sync.Once
	path    string
	initErr error
	run     func(ctx context.Context, name string, args ...string) error
}

// NewCommandPlayer returns a player using command, or the platform's
// default player when command is empty. The cue file is written to dir.
func NewCommandPlayer(command, dir string) *CommandPlayer {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		fields = defaultPlayerCommand()
	}
	return &CommandPlayer{command: fields, dir: dir, run: runCommand}
}

// Play renders the cue if needed and runs the player on it.
func (player *CommandPlayer) Play(ctx context.Context) error {
	player.once.Do(player.prepare)
	if player.initErr != nil {
		return player.initErr
	}
	if len(player.command) == 0 {
		return fmt.Errorf("no audio player for %s", runtime.GOOS)
	}

	return player.run(ctx, player.command[0], commandArgs(player.command[1:], player.path)...)
}

// Available reports whether a player command was configured or found.
func (player *CommandPlayer) Available() bool {
	return len(player.command) > 0
}

// Path returns the rendered cue file, empty until the first Play.
func (player *CommandPlayer) Path() string {
	return player.path
}

func (player *CommandPlayer) prepare() {
	dir := player.dir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		player.initErr = fmt.Errorf("create cue directory: %w", err)
		return
	}
	path := filepath.Join(dir, "completion.wav")
	if err := os.WriteFile(path, EncodeWAV(RenderCue(cueSampleRate), cueSampleRate), 0o644); err != nil {
		player.initErr = fmt.Errorf("write cue: %w", err)
		return
	}
	player.path = path
}

func defaultPlayerCommand() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{"afplay"}
	case "windows":
		return []string{"powershell", "-NoProfile", "-Command", "(New-Object Media.SoundPlayer '" + filePlaceholder + "').PlaySync()"}
	default:
		for _, name := range []string{"paplay", "pw-play", "aplay"} {
			if path, err := exec.LookPath(name); err == nil {
				if name == "aplay" {
					return []string{path, "-q"}
				}
				return []string{path}
			}
		}
		return nil
	}
}

// filePlaceholder marks where the cue path goes in a player command. When
// absent the path is appended as the last argument.
const filePlaceholder = "{file}"

func commandArgs(args []string, path string) []string {
	out := make([]string, 0, len(args)+1)
	substituted := false
	for _, arg := range args {
		if strings.Contains(arg, filePlaceholder) {
			arg = strings.ReplaceAll(arg, filePlaceholder, path)
			substituted = true
		}
		out = append(out, arg)
	}
	if !substituted {
		out = append(out, path)
	}
	return out
}

func runCommand(ctx context.Context, name string, args ...string) error {
	output, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// BellPlayer rings the terminal bell.
type BellPlayer struct {
	out io.Writer
}

func NewBellPlayer(out io.Writer) *BellPlayer {
	return &BellPlayer{out: out}
}

func (player *BellPlayer) Play(context.Context) error {
	_, err := io.WriteString(player.out, "\a")
	return err
}
