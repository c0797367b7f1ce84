package gpu

import (
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/morphcloud/cloud/shaders"
	"github.com/go-gl/mathgl/mgl32"
)

// PointUniforms matches the WGSL Frame struct.
type PointUniforms struct {
	View       mgl32.Mat4
	Proj       mgl32.Mat4
	Color      [4]float32
	OffsetSize [4]float32
}

// CornerVertex is one corner of the unit sprite quad.
type CornerVertex struct {
	Corner [2]float32
}

const pointStride = 3 * 4

// PointPass draws one camera-facing sprite per particle.
type PointPass struct {
	Pipeline       *wgpu.RenderPipeline
	BindGroup      *wgpu.BindGroup
	UniformBuffer  *wgpu.Buffer
	CornerBuffer   *wgpu.Buffer
	InstanceBuffer *wgpu.Buffer
	InstanceCap    uint32
	Count          uint32
	Device         *wgpu.Device
}

func NewPointPass(device *wgpu.Device, format wgpu.TextureFormat) (*PointPass, error) {
	shaderModule, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "PointShader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.PointsWGSL},
	})
	if err != nil {
		return nil, err
	}
	defer shaderModule.Release()

	uniformSize := uint64(unsafe.Sizeof(PointUniforms{}))
	bgl, err := device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "PointFrameBGL",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: uniformSize,
				},
			},
		},
	})
	if err != nil {
		return nil, err
	}

	pipelineLayout, err := device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		BindGroupLayouts: []*wgpu.BindGroupLayout{bgl},
	})
	if err != nil {
		return nil, err
	}

	pipeline, err := device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "PointPipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     shaderModule,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: uint64(unsafe.Sizeof(CornerVertex{})),
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
					},
				},
				{
					ArrayStride: pointStride,
					StepMode:    wgpu.VertexStepModeInstance,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 1},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shaderModule,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    format,
					WriteMask: wgpu.ColorWriteMaskAll,
					// Additive so dense regions glow.
					Blend: &wgpu.BlendState{
						Color: wgpu.BlendComponent{
							Operation: wgpu.BlendOperationAdd,
							SrcFactor: wgpu.BlendFactorSrcAlpha,
							DstFactor: wgpu.BlendFactorOne,
						},
						Alpha: wgpu.BlendComponent{
							Operation: wgpu.BlendOperationAdd,
							SrcFactor: wgpu.BlendFactorOne,
							DstFactor: wgpu.BlendFactorOne,
						},
					},
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, err
	}

	p := &PointPass{
		Pipeline: pipeline,
		Device:   device,
	}

	corners := []CornerVertex{
		{Corner: [2]float32{-1, -1}}, {Corner: [2]float32{1, -1}}, {Corner: [2]float32{1, 1}},
		{Corner: [2]float32{-1, -1}}, {Corner: [2]float32{1, 1}}, {Corner: [2]float32{-1, 1}},
	}
	cSize := uint64(len(corners) * int(unsafe.Sizeof(CornerVertex{})))
	p.CornerBuffer, err = device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "PointCornerBuffer",
		Contents: unsafe.Slice((*byte)(unsafe.Pointer(&corners[0])), cSize),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		return nil, err
	}

	p.UniformBuffer, err = device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "PointUniformBuffer",
		Size:  uniformSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}

	p.BindGroup, err = device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "PointFrameBG",
		Layout: bgl,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: p.UniformBuffer, Size: uniformSize},
		},
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Update uploads packed x,y,z positions and the frame uniforms. The instance
// buffer only grows, so a fixed particle count uploads in place every frame.
func (p *PointPass) Update(queue *wgpu.Queue, positions []float32, u PointUniforms) error {
	count := uint32(len(positions) / 3)
	p.Count = count

	uSize := uint64(unsafe.Sizeof(u))
	queue.WriteBuffer(p.UniformBuffer, 0, unsafe.Slice((*byte)(unsafe.Pointer(&u)), uSize))

	if count == 0 {
		return nil
	}
	if p.InstanceBuffer == nil || p.InstanceCap < count {
		if p.InstanceBuffer != nil {
			p.InstanceBuffer.Release()
		}
		buf, err := p.Device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "PointInstanceBuffer",
			Size:  uint64(count) * pointStride,
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			p.InstanceBuffer = nil
			p.InstanceCap = 0
			return err
		}
		p.InstanceBuffer = buf
		p.InstanceCap = count
	}

	size := uint64(count) * pointStride
	queue.WriteBuffer(p.InstanceBuffer, 0, unsafe.Slice((*byte)(unsafe.Pointer(&positions[0])), size))
	return nil
}

func (p *PointPass) Draw(pass *wgpu.RenderPassEncoder) {
	if p.InstanceBuffer == nil || p.Count == 0 {
		return
	}
	pass.SetPipeline(p.Pipeline)
	pass.SetBindGroup(0, p.BindGroup, nil)
	pass.SetVertexBuffer(0, p.CornerBuffer, 0, p.CornerBuffer.GetSize())
	pass.SetVertexBuffer(1, p.InstanceBuffer, 0, uint64(p.Count)*pointStride)
	pass.Draw(6, p.Count, 0, 0)
}

func (p *PointPass) Release() {
	if p.InstanceBuffer != nil {
		p.InstanceBuffer.Release()
		p.InstanceBuffer = nil
	}
	if p.UniformBuffer != nil {
		p.UniformBuffer.Release()
	}
	if p.CornerBuffer != nil {
		p.CornerBuffer.Release()
	}
	if p.BindGroup != nil {
		p.BindGroup.Release()
	}
	if p.Pipeline != nil {
		p.Pipeline.Release()
	}
}
