package mcp

import (
	"context"
	"fmt"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/declantsien/wescap/internal/buffer"
	"github.com/declantsien/wescap/internal/capture"
	"github.com/declantsien/wescap/internal/encode"
	"github.com/declantsien/wescap/internal/shot"
)

func (s *Server) handleCaptureScreen(_ context.Context, _ *mcpsdk.CallToolRequest, args CaptureScreenInput) (*mcpsdk.CallToolResult, CaptureScreenOutput, error) {
	bufferType := s.config.BufferType
	if args.BufferType != "" {
		bufferType = args.BufferType
	}
	kind, err := buffer.ParseKind(bufferType)
	if err != nil {
		return nil, CaptureScreenOutput{}, err
	}

	sourceType := s.config.SourceType
	if args.SourceType != "" {
		sourceType = args.SourceType
	}
	source, err := capture.ParseSourceKind(sourceType)
	if err != nil {
		return nil, CaptureScreenOutput{}, err
	}

	retryLimit := s.config.RetryLimit
	if args.RetryLimit != nil {
		if *args.RetryLimit < 0 {
			return nil, CaptureScreenOutput{}, fmt.Errorf("retry_limit must not be negative, got %d", *args.RetryLimit)
		}
		retryLimit = *args.RetryLimit
	}

	res, err := s.takeFn(shot.Options{
		Buffer:     kind,
		Source:     source,
		DRMDevice:  s.config.DRMDevice,
		RetryLimit: retryLimit,
		ForceX11:   args.X11,
		Log:        s.log,
	})
	if err != nil {
		return nil, CaptureScreenOutput{}, err
	}

	dir := s.config.OutputDir
	if args.OutputDir != "" {
		dir = args.OutputDir
	}
	if dir == "" {
		dir = encode.DefaultDir()
	}
	path, err := encode.Save(dir, time.Now(), res.Image)
	if err != nil {
		return nil, CaptureScreenOutput{}, err
	}

	return nil, CaptureScreenOutput{
		Path:    path,
		Width:   res.Image.Width,
		Height:  res.Image.Height,
		Outputs: len(res.Outputs),
		Backend: res.Backend,
	}, nil
}

func (s *Server) handleListOutputs(_ context.Context, _ *mcpsdk.CallToolRequest, args ListOutputsInput) (*mcpsdk.CallToolResult, ListOutputsOutput, error) {
	infos, err := s.listFn(args.X11, s.log)
	if err != nil {
		return nil, ListOutputsOutput{}, err
	}

	outputs := make([]OutputDescription, 0, len(infos))
	for _, info := range infos {
		outputs = append(outputs, OutputDescription{
			Name:   info.Name,
			X:      int(info.X),
			Y:      int(info.Y),
			Width:  int(info.Width),
			Height: int(info.Height),
			Scale:  int(info.Scale),
		})
	}
	return nil, ListOutputsOutput{Outputs: outputs}, nil
}
