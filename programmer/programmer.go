package programmer

import (
	"context"
	"fmt"
	"time"

	"github.com/jfrohnhofen/electric-piano/firmware"
	"github.com/jfrohnhofen/electric-piano/protocol"
	"github.com/jfrohnhofen/electric-piano/transport"
)

// Programmer drives the bootloader protocol from the host side. It issues
// one command at a time and blocks on the device's reply; the protocol has
// no pipelining.
type Programmer struct {
	transport transport.Transport
	config    Config
}

// New creates a Programmer over the given transport.
//
// Example:
//
//	prog := programmer.New(port,
//	    programmer.WithProgressCallback(progressFunc),
//	    programmer.WithPageGeometry(64, 128),
//	)
func New(t transport.Transport, opts ...Option) *Programmer {
	if t == nil {
		panic("transport cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Programmer{
		transport: t,
		config:    cfg,
	}
}

// Ping checks that the bootloader is alive.
func (p *Programmer) Ping(ctx context.Context) error {
	_, err := p.roundTrip(ctx, "ping", protocol.CmdPing, nil, protocol.ReplySuccess)
	return err
}

// WritePage programs one flash page. The data must be exactly one page.
func (p *Programmer) WritePage(ctx context.Context, page int, data []byte) error {
	if len(data) != p.config.PageSize {
		return fmt.Errorf("page data must be exactly %d bytes, got %d", p.config.PageSize, len(data))
	}
	if page < 0 || page >= p.config.PageCount {
		return &PageOutOfRangeError{Page: page, PageCount: p.config.PageCount}
	}

	params := make([]byte, 0, 1+len(data))
	params = append(params, byte(page))
	params = append(params, data...)

	_, err := p.roundTrip(ctx, "write page", protocol.CmdWrite, params, protocol.ReplySuccess)
	return err
}

// ReadPage reads back one flash page.
func (p *Programmer) ReadPage(ctx context.Context, page int) ([]byte, error) {
	if page < 0 || page >= p.config.PageCount {
		return nil, &PageOutOfRangeError{Page: page, PageCount: p.config.PageCount}
	}

	data, err := p.roundTrip(ctx, "read page", protocol.CmdRead, []byte{byte(page)}, protocol.ReplyReadData)
	if err != nil {
		return nil, err
	}
	if len(data) != p.config.PageSize {
		return nil, fmt.Errorf("read page: got %d bytes, expected %d", len(data), p.config.PageSize)
	}
	return data, nil
}

// VerifyPage returns the device-computed XOR fold of one flash page.
func (p *Programmer) VerifyPage(ctx context.Context, page int) (byte, error) {
	if page < 0 || page >= p.config.PageCount {
		return 0, &PageOutOfRangeError{Page: page, PageCount: p.config.PageCount}
	}

	data, err := p.roundTrip(ctx, "verify page", protocol.CmdVerify, []byte{byte(page)}, protocol.ReplyVerifyData)
	if err != nil {
		return 0, err
	}
	if len(data) != 1 {
		return 0, fmt.Errorf("verify page: got %d parameter bytes, expected 1", len(data))
	}
	return data[0], nil
}

// Quit tells the bootloader to start the resident application. The device
// acknowledges before handing control away, so a Success reply means the
// application is about to run.
func (p *Programmer) Quit(ctx context.Context) error {
	_, err := p.roundTrip(ctx, "quit", protocol.CmdQuit, nil, protocol.ReplySuccess)
	return err
}

// Program performs the complete reprogramming sequence:
//  1. Ping the bootloader
//  2. Write every page of the image
//  3. Verify each written page against the local XOR fold (optional)
//  4. Quit the bootloader to start the application
//
// The operation can be cancelled via context between pages.
func (p *Programmer) Program(ctx context.Context, img *firmware.Image) error {
	if img == nil {
		return fmt.Errorf("image cannot be nil")
	}
	if img.PageSize != p.config.PageSize {
		return fmt.Errorf("image page size %d does not match device page size %d", img.PageSize, p.config.PageSize)
	}

	startTime := time.Now()

	p.reportProgress(Progress{
		Phase:      PhaseConnecting,
		TotalPages: len(img.Pages),
	})

	if err := p.Ping(ctx); err != nil {
		return fmt.Errorf("ping bootloader: %w", err)
	}

	bytesWritten := 0
	for i, page := range img.Pages {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("cancelled: %w", err)
		}

		if err := p.WritePage(ctx, page.Index, page.Data); err != nil {
			return fmt.Errorf("write page %d: %w", page.Index, err)
		}

		if p.config.VerifyAfterWrite {
			got, err := p.VerifyPage(ctx, page.Index)
			if err != nil {
				return fmt.Errorf("verify page %d: %w", page.Index, err)
			}
			want := protocol.Checksum(page.Data)
			if got != want {
				return &VerifyMismatchError{Page: page.Index, Expected: want, Actual: got}
			}
		}

		bytesWritten += len(page.Data)
		p.reportProgress(Progress{
			Phase:        PhaseWriting,
			CurrentPage:  i + 1,
			TotalPages:   len(img.Pages),
			Percentage:   float64(i+1) / float64(len(img.Pages)) * 95,
			BytesWritten: bytesWritten,
			ElapsedTime:  time.Since(startTime),
		})
	}

	p.reportProgress(Progress{
		Phase:        PhaseStarting,
		CurrentPage:  len(img.Pages),
		TotalPages:   len(img.Pages),
		Percentage:   95,
		BytesWritten: bytesWritten,
		ElapsedTime:  time.Since(startTime),
	})

	if err := p.Quit(ctx); err != nil {
		return fmt.Errorf("quit bootloader: %w", err)
	}

	p.reportProgress(Progress{
		Phase:        PhaseComplete,
		CurrentPage:  len(img.Pages),
		TotalPages:   len(img.Pages),
		Percentage:   100,
		BytesWritten: bytesWritten,
		ElapsedTime:  time.Since(startTime),
	})

	p.config.Logger.WithField("pages", len(img.Pages)).
		WithField("bytes", bytesWritten).
		WithField("elapsed", time.Since(startTime).String()).
		Info("programming complete")

	return nil
}

// roundTrip sends one command frame and reads the framed reply, mapping an
// Error reply to *protocol.ProtocolError and checking the reply opcode.
func (p *Programmer) roundTrip(ctx context.Context, op string, command byte, params []byte, wantReply byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: cancelled: %w", op, err)
	}

	frame := protocol.Encode(p.config.Header, command, params)
	for _, c := range frame {
		if err := p.transport.PutByte(c); err != nil {
			return nil, fmt.Errorf("%s: transmit: %w", op, err)
		}
	}

	if p.config.CommandDelay > 0 {
		time.Sleep(p.config.CommandDelay)
	}

	replyCmd, replyParams, err := p.readReply(op)
	if err != nil {
		return nil, err
	}

	if replyCmd == protocol.ReplyError {
		code := byte(protocol.ErrNone)
		if len(replyParams) > 0 {
			code = replyParams[0]
		}
		return nil, &protocol.ProtocolError{Operation: op, Code: code}
	}
	if replyCmd != wantReply {
		return nil, fmt.Errorf("%s: unexpected reply 0x%02X, expected 0x%02X", op, replyCmd, wantReply)
	}

	p.config.Logger.WithField("op", op).Debug("command acknowledged")
	return replyParams, nil
}

// readReply collects one complete frame from the transport and decodes it.
// Bytes outside a frame are skipped: the MIDI link may carry unrelated
// traffic between replies.
func (p *Programmer) readReply(op string) (byte, []byte, error) {
	frame := make([]byte, 0, 1+protocol.HeaderSize+2*(2+p.config.PageSize)+1)

	for {
		c, err := p.transport.GetByte()
		if err != nil {
			return 0, nil, fmt.Errorf("%s: read reply: %w", op, err)
		}
		if c == protocol.StartOfMessage {
			frame = append(frame, c)
			break
		}
	}

	for {
		c, err := p.transport.GetByte()
		if err != nil {
			return 0, nil, fmt.Errorf("%s: read reply: %w", op, err)
		}
		frame = append(frame, c)
		if c == protocol.EndOfMessage {
			break
		}
	}

	cmd, params, err := protocol.Decode(frame, p.config.Header)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: decode reply: %w", op, err)
	}
	return cmd, params, nil
}

// reportProgress calls the progress callback if configured.
func (p *Programmer) reportProgress(progress Progress) {
	if p.config.ProgressCallback != nil {
		p.config.ProgressCallback(progress)
	}
}
