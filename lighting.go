package softgl

import "math"

// specularTableSize is the number of steps of a specular power table; the
// table has one extra entry for a dot product of exactly 1.
const specularTableSize = 1024

// light is one light source. Position and spot direction are stored in eye
// space, transformed by the modelview matrix current when they were set.
type light struct {
	ambient, diffuse, specular Vec4

	position Vec4
	// direction is the normalized position of a directional (w == 0) light.
	direction Vec3

	spotDirection Vec3
	spotExponent  float64
	spotCutoff    float64
	cosSpotCutoff float64

	attenuation [3]float64

	enabled    bool
	prev, next *light
}

// material is the reflectance of one face. Colours are clamped to [0, 1].
type material struct {
	emission, ambient, diffuse, specular Vec4
	shininess                            float64
}

// lightModel holds the global lighting parameters.
type lightModel struct {
	ambient     Vec4
	localViewer bool
	twoSide     bool
}

// specularTable holds pow(i/specularTableSize, shininess) for every step.
type specularTable struct {
	shininess int
	buf       [specularTableSize + 1]float64
}

func newSpecularTable(shininess int) *specularTable {
	t := &specularTable{shininess: shininess}
	for i := range t.buf {
		t.buf[i] = math.Pow(float64(i)/specularTableSize, float64(shininess))
	}
	return t
}

// lookup returns dot^shininess for dot in [0, 1].
func (t *specularTable) lookup(dot float64) float64 {
	idx := int(dot * specularTableSize)
	return t.buf[min(max(idx, 0), specularTableSize)]
}

// specularTableFor returns the power table for shininess, building it when
// it is not among the cached ones. The cache evicts the least recently
// used table.
func (c *Context) specularTableFor(shininess float64) *specularTable {
	key := int(shininess + 0.5)
	return c.specular.GetOrCreate(key, func() *specularTable {
		slogger().Debug("softgl: specular table built", "shininess", key)
		return newSpecularTable(key)
	})
}

func (c *Context) resetLighting() {
	for i := range c.lights {
		l := &c.lights[i]
		*l = light{
			ambient:       V4(0, 0, 0, 1),
			diffuse:       V4(0, 0, 0, 1),
			specular:      V4(0, 0, 0, 1),
			position:      V4(0, 0, 1, 0),
			direction:     V3(0, 0, 1),
			spotDirection: V3(0, 0, -1),
			spotCutoff:    180,
			cosSpotCutoff: -1,
			attenuation:   [3]float64{1, 0, 0},
		}
	}
	c.lights[0].diffuse = V4(1, 1, 1, 1)
	c.lights[0].specular = V4(1, 1, 1, 1)
	c.firstLight = nil

	for i := range c.materials {
		c.materials[i] = material{
			emission: V4(0, 0, 0, 1),
			ambient:  V4(0.2, 0.2, 0.2, 1),
			diffuse:  V4(0.8, 0.8, 0.8, 1),
			specular: V4(0, 0, 0, 1),
		}
	}
	c.lightModel = lightModel{ambient: V4(0.2, 0.2, 0.2, 1)}
	c.colorMatFace = FaceFrontAndBack
	c.colorMatParam = MaterialAmbientAndDiffuse
}

// enableLight links or unlinks light i from the active list.
func (c *Context) enableLight(i int, on bool) {
	l := &c.lights[i]
	if l.enabled == on {
		return
	}
	l.enabled = on
	if on {
		l.prev = nil
		l.next = c.firstLight
		if c.firstLight != nil {
			c.firstLight.prev = l
		}
		c.firstLight = l
		return
	}
	if l.prev != nil {
		l.prev.next = l.next
	} else {
		c.firstLight = l.next
	}
	if l.next != nil {
		l.next.prev = l.prev
	}
	l.prev, l.next = nil, nil
}

// faces returns the materials addressed by face, or nil for a bad enum.
func (c *Context) faces(face Face) []*material {
	switch face {
	case FaceFront:
		return []*material{&c.materials[0]}
	case FaceBack:
		return []*material{&c.materials[1]}
	case FaceFrontAndBack:
		return []*material{&c.materials[0], &c.materials[1]}
	default:
		return nil
	}
}

func (m *material) set(param MaterialParam, v Vec4) bool {
	switch param {
	case MaterialEmission:
		m.emission = v.Clamp01()
	case MaterialAmbient:
		m.ambient = v.Clamp01()
	case MaterialDiffuse:
		m.diffuse = v.Clamp01()
	case MaterialSpecular:
		m.specular = v.Clamp01()
	case MaterialAmbientAndDiffuse:
		m.ambient = v.Clamp01()
		m.diffuse = m.ambient
	case MaterialShininess:
		m.shininess = min(max(v.X, 0), 128)
	default:
		return false
	}
	return true
}

type materialCmd struct {
	face  Face
	param MaterialParam
	v     Vec4
}

func (materialCmd) Opcode() Opcode { return OpMaterial }

func (cmd materialCmd) apply(c *Context) {
	mats := c.faces(cmd.face)
	if mats == nil {
		c.setError(InvalidEnum)
		return
	}
	for _, m := range mats {
		if !m.set(cmd.param, cmd.v) {
			c.setError(InvalidEnum)
			return
		}
	}
}

// Material sets a colour property of the front, back or both materials.
// Material may be called between Begin and End.
func (c *Context) Material(face Face, param MaterialParam, v Vec4) {
	c.exec(materialCmd{face, param, v})
}

// Materialf sets a scalar material property (MaterialShininess, clamped
// to [0, 128]).
func (c *Context) Materialf(face Face, param MaterialParam, f float64) {
	if param != MaterialShininess {
		c.exec(invalidCmd{OpMaterial, InvalidEnum})
		return
	}
	c.exec(materialCmd{face, param, V4(f, 0, 0, 0)})
}

type colorMaterialCmd struct {
	face  Face
	param MaterialParam
}

func (colorMaterialCmd) Opcode() Opcode { return OpColorMaterial }

func (cmd colorMaterialCmd) apply(c *Context) {
	if c.insideBegin() {
		return
	}
	if c.faces(cmd.face) == nil || cmd.param < MaterialEmission || cmd.param > MaterialAmbientAndDiffuse ||
		cmd.param == MaterialShininess {
		c.setError(InvalidEnum)
		return
	}
	c.colorMatFace = cmd.face
	c.colorMatParam = cmd.param
}

// ColorMaterial selects the material property that tracks the current
// colour while CapColorMaterial is enabled.
func (c *Context) ColorMaterial(face Face, param MaterialParam) {
	c.exec(colorMaterialCmd{face, param})
}

// applyColorMaterial copies col into the tracked material property.
func (c *Context) applyColorMaterial(col Vec4) {
	for _, m := range c.faces(c.colorMatFace) {
		m.set(c.colorMatParam, col)
	}
}

type lightCmd struct {
	i     int
	param LightParam
	v     Vec4
}

func (lightCmd) Opcode() Opcode { return OpLight }

func (cmd lightCmd) apply(c *Context) {
	if c.insideBegin() {
		return
	}
	if cmd.i < 0 || cmd.i >= MaxLights {
		c.setError(InvalidEnum)
		return
	}
	l := &c.lights[cmd.i]
	v := cmd.v
	switch cmd.param {
	case LightAmbient:
		l.ambient = v
	case LightDiffuse:
		l.diffuse = v
	case LightSpecular:
		l.specular = v
	case LightPosition:
		l.position = c.current(MatrixModelView).Transform(v)
		if l.position.W == 0 {
			l.direction = l.position.XYZ().Normalize()
		}
	case LightSpotDirection:
		l.spotDirection = c.current(MatrixModelView).Transform3(v.XYZ()).Normalize()
	case LightSpotExponent:
		if v.X < 0 || v.X > 128 {
			c.setError(InvalidValue)
			return
		}
		l.spotExponent = v.X
	case LightSpotCutoff:
		a := v.X
		if a != 180 && (a < 0 || a > 90) {
			c.setError(InvalidValue)
			return
		}
		l.spotCutoff = a
		l.cosSpotCutoff = math.Cos(a * math.Pi / 180)
	case LightConstantAttenuation, LightLinearAttenuation, LightQuadraticAttenuation:
		if v.X < 0 {
			c.setError(InvalidValue)
			return
		}
		l.attenuation[cmd.param-LightConstantAttenuation] = v.X
	default:
		c.setError(InvalidEnum)
	}
}

// Light sets a vector property of light i. Position and spot direction
// are transformed by the current modelview matrix.
func (c *Context) Light(i int, param LightParam, v Vec4) {
	c.exec(lightCmd{i, param, v})
}

// Lightf sets a scalar property of light i: spot exponent, spot cutoff
// (0 to 90 degrees, or 180 for no cone) or an attenuation coefficient.
func (c *Context) Lightf(i int, param LightParam, f float64) {
	if param < LightSpotExponent {
		c.exec(invalidCmd{OpLight, InvalidEnum})
		return
	}
	c.exec(lightCmd{i, param, V4(f, 0, 0, 0)})
}

type lightModelCmd struct {
	ambient     *Vec4
	localViewer *bool
	twoSide     *bool
}

func (lightModelCmd) Opcode() Opcode { return OpLightModel }

func (cmd lightModelCmd) apply(c *Context) {
	if c.insideBegin() {
		return
	}
	switch {
	case cmd.ambient != nil:
		c.lightModel.ambient = *cmd.ambient
	case cmd.localViewer != nil:
		c.lightModel.localViewer = *cmd.localViewer
	case cmd.twoSide != nil:
		c.lightModel.twoSide = *cmd.twoSide
	}
}

// LightModelAmbient sets the scene ambient colour.
func (c *Context) LightModelAmbient(v Vec4) { c.exec(lightModelCmd{ambient: &v}) }

// LightModelLocalViewer selects a local viewer for specular highlights
// instead of one infinitely far along -z.
func (c *Context) LightModelLocalViewer(on bool) { c.exec(lightModelCmd{localViewer: &on}) }

// LightModelTwoSide lights faces pointing away from the light as if their
// normal were flipped.
func (c *Context) LightModelTwoSide(on bool) { c.exec(lightModelCmd{twoSide: &on}) }

type specularCmd struct{ on bool }

func (specularCmd) Opcode() Opcode { return OpSetSpecular }

func (cmd specularCmd) apply(c *Context) { c.specularEnabled = cmd.on }

// SetSpecular turns the specular term of lighting on or off.
func (c *Context) SetSpecular(on bool) { c.exec(specularCmd{on}) }

// shadeVertex evaluates the lighting equation for v with the front
// material and returns the clamped colour.
func (c *Context) shadeVertex(v *vertex) Vec4 {
	m := &c.materials[0]
	n := v.normal
	twoSide := c.lightModel.twoSide

	r := m.emission.X + m.ambient.X*c.lightModel.ambient.X
	g := m.emission.Y + m.ambient.Y*c.lightModel.ambient.Y
	b := m.emission.Z + m.ambient.Z*c.lightModel.ambient.Z

	var table *specularTable
	if c.specularEnabled {
		table = c.specularTableFor(m.shininess)
	}
	eye := v.ec.XYZ()

	for l := c.firstLight; l != nil; l = l.next {
		lr := l.ambient.X * m.ambient.X
		lg := l.ambient.Y * m.ambient.Y
		lb := l.ambient.Z * m.ambient.Z

		var d Vec3
		att := 1.0
		if l.position.W == 0 {
			d = l.direction
		} else {
			d = l.position.XYZ().Sub(eye)
			dist := d.Length()
			if dist > 1e-3 {
				d = d.Mul(1 / dist)
			}
			k := l.attenuation
			att = 1 / (k[0] + dist*(k[1]+dist*k[2]))
		}

		dot := n.Dot(d)
		if twoSide && dot < 0 {
			dot = -dot
		}
		if dot > 0 {
			if l.spotCutoff != 180 {
				dotSpot := -d.Dot(l.spotDirection)
				if dotSpot < l.cosSpotCutoff {
					continue
				}
				if l.spotExponent > 0 {
					att *= math.Pow(dotSpot, l.spotExponent)
				}
			}

			lr += dot * l.diffuse.X * m.diffuse.X
			lg += dot * l.diffuse.Y * m.diffuse.Y
			lb += dot * l.diffuse.Z * m.diffuse.Z

			if table != nil {
				var s Vec3
				if c.lightModel.localViewer {
					s = d.Sub(eye.Normalize())
				} else {
					s = d.Add(V3(0, 0, 1))
				}
				dotS := 0.0
				if sl := s.Length(); sl >= 1e-3 {
					dotS = n.Dot(s) / sl
				}
				if twoSide && dotS < 0 {
					dotS = -dotS
				}
				if dotS > 0 {
					sp := table.lookup(clamp01(dotS))
					lr += sp * l.specular.X * m.specular.X
					lg += sp * l.specular.Y * m.specular.Y
					lb += sp * l.specular.Z * m.specular.Z
				}
			}
		}

		r += att * lr
		g += att * lg
		b += att * lb
	}

	return Vec4{X: clamp01(r), Y: clamp01(g), Z: clamp01(b), W: clamp01(m.diffuse.W)}
}
