package software

import (
	"testing"

	"github.com/spectra-render/spectra/scene"
	"github.com/spectra-render/spectra/tracer"
	"github.com/spectra-render/spectra/types"
)

func makeTracerScene(t *testing.T) *scene.Scene {
	camera := scene.NewCamera(45)
	camera.Samples = 1
	camera.Bounces = 2
	camera.SetupProjection(1)

	b := scene.NewBuilder()
	sc, err := b.Build(camera, scene.DefaultLight())
	if err != nil {
		t.Fatalf("error building scene: %v", err)
	}
	return sc
}

func TestTracerRendersFrame(t *testing.T) {
	const frameW, frameH = 8, 8

	sc := makeTracerScene(t)
	tr := NewTracer("test-tracer", DefaultPipeline(DenoiserOptions{Kind: DenoiseNone}, false))
	if err := tr.Init(); err != nil {
		t.Fatalf("error initializing tracer: %v", err)
	}
	defer tr.Close()

	frameBuffer := make([]uint8, frameW*frameH*4)
	updates := []struct {
		updateType tracer.UpdateType
		data       interface{}
	}{
		{tracer.FrameDimensions, [2]uint32{frameW, frameH}},
		{tracer.SceneData, sc},
		{tracer.FrameBuffer, frameBuffer},
	}
	for _, update := range updates {
		if _, err := tr.UpdateState(tracer.Synchronous, update.updateType, update.data); err != nil {
			t.Fatalf("error applying update %d: %v", update.updateType, err)
		}
	}

	req := &tracer.BlockRequest{
		FrameW: frameW,
		FrameH: frameH,
		BlockY: 0,
		BlockH: frameH,
	}
	if _, err := tr.Trace(req); err != nil {
		t.Fatalf("error tracing block: %v", err)
	}
	if _, err := tr.SyncFramebuffer(req); err != nil {
		t.Fatalf("error syncing frame buffer: %v", err)
	}

	// An empty scene renders the sky color; every pixel must be the
	// same tonemapped value with an opaque alpha.
	for off := 4; off < len(frameBuffer); off += 4 {
		for ch := 0; ch < 3; ch++ {
			if frameBuffer[off+ch] != frameBuffer[ch] {
				t.Fatalf("[offset %d] expected a uniform frame; got %d and %d", off+ch, frameBuffer[ch], frameBuffer[off+ch])
			}
		}
		if frameBuffer[off+3] != 255 {
			t.Fatalf("[offset %d] expected opaque alpha; got %d", off+3, frameBuffer[off+3])
		}
	}
	if frameBuffer[0] == 0 && frameBuffer[1] == 0 && frameBuffer[2] == 0 {
		t.Fatal("expected non-black sky pixels")
	}

	if stats := tr.Stats(); stats.BlockH != frameH {
		t.Fatalf("expected stats block height %d; got %d", frameH, stats.BlockH)
	}
}

func TestTracerUpdateErrors(t *testing.T) {
	type spec struct {
		updateType tracer.UpdateType
		data       interface{}
		expErr     error
	}
	specs := []spec{
		spec{tracer.FrameDimensions, "bogus", ErrInvalidUpdateData},
		spec{tracer.SceneData, 42, ErrInvalidUpdateData},
		spec{tracer.CameraData, "bogus", ErrInvalidUpdateData},
		spec{tracer.LightData, scene.DefaultLight(), ErrNoSceneData},
		spec{tracer.FrameBuffer, 1.0, ErrInvalidUpdateData},
		spec{tracer.UpdateType(200), nil, ErrUnsupportedUpdateType},
	}

	tr := NewTracer("test-tracer", DefaultPipeline(DenoiserOptions{Kind: DenoiseNone}, false))
	if err := tr.Init(); err != nil {
		t.Fatalf("error initializing tracer: %v", err)
	}
	defer tr.Close()

	for index, s := range specs {
		if _, err := tr.UpdateState(tracer.Synchronous, s.updateType, s.data); err != s.expErr {
			t.Fatalf("[spec %d] expected error %v; got %v", index, s.expErr, err)
		}
	}
}

func TestTracerTraceWithoutScene(t *testing.T) {
	tr := NewTracer("test-tracer", DefaultPipeline(DenoiserOptions{Kind: DenoiseNone}, false))
	if err := tr.Init(); err != nil {
		t.Fatalf("error initializing tracer: %v", err)
	}
	defer tr.Close()

	req := &tracer.BlockRequest{FrameW: 4, FrameH: 4, BlockH: 4}
	if _, err := tr.Trace(req); err != ErrNoSceneData {
		t.Fatalf("expected %v; got %v", ErrNoSceneData, err)
	}
}

func TestTonemapRow(t *testing.T) {
	src := NewImage(2, 1)
	src.Set(0, 0, types.Vec3{0, 0, 0})
	src.Set(1, 0, types.Vec3{1, 1, 1})

	frameBuffer := make([]uint8, 2*4)
	req := &tracer.BlockRequest{FrameW: 2, FrameH: 1, BlockH: 1, Exposure: 0}
	tonemapRow(0, req, src, frameBuffer)

	if frameBuffer[0] != 0 || frameBuffer[3] != 255 {
		t.Fatalf("expected black pixel with opaque alpha; got %v", frameBuffer[:4])
	}

	// 1.0 maps to 0.5 through Reinhard, then through gamma to ~186
	if frameBuffer[4] != 186 {
		t.Fatalf("expected tonemapped value 186; got %d", frameBuffer[4])
	}
	if frameBuffer[4] != frameBuffer[5] || frameBuffer[5] != frameBuffer[6] {
		t.Fatalf("expected gray pixel; got %v", frameBuffer[4:8])
	}
}
