package texture

// Store owns every texture object of a context, keyed by handle, and
// tracks the current binding. Handle 0 is the default texture: it always
// exists and cannot be deleted.
type Store struct {
	textures map[uint32]*Texture
	current  *Texture
	conv     *Converter
}

// NewStore returns a store holding only the default texture, bound.
func NewStore(conv *Converter) *Store {
	s := &Store{
		textures: make(map[uint32]*Texture),
		conv:     conv,
	}
	s.current = s.create(0)
	return s
}

func (s *Store) create(h uint32) *Texture {
	t := newTexture(h, s.conv)
	s.textures[h] = t
	return t
}

// Gen allocates n new texture objects numbered after the highest existing
// handle and returns their handles.
func (s *Store) Gen(n int) []uint32 {
	var top uint32
	for h := range s.textures {
		top = max(top, h)
	}
	out := make([]uint32, n)
	for i := range out {
		top++
		s.create(top)
		out[i] = top
	}
	return out
}

// Lookup returns the texture for h.
func (s *Store) Lookup(h uint32) (*Texture, bool) {
	t, ok := s.textures[h]
	return t, ok
}

// IsTexture reports whether h names a texture object other than the default.
func (s *Store) IsTexture(h uint32) bool {
	if h == 0 {
		return false
	}
	_, ok := s.textures[h]
	return ok
}

// Bind makes h the current texture, creating it on first use.
func (s *Store) Bind(h uint32) *Texture {
	t, ok := s.textures[h]
	if !ok {
		t = s.create(h)
	}
	s.current = t
	return t
}

// Delete removes the named textures. Deleting the bound texture rebinds
// the default one. Unknown handles and 0 are ignored.
func (s *Store) Delete(handles ...uint32) {
	for _, h := range handles {
		if h == 0 {
			continue
		}
		t, ok := s.textures[h]
		if !ok {
			continue
		}
		if s.current == t {
			s.current = s.textures[0]
		}
		delete(s.textures, h)
	}
}

// Current returns the bound texture.
func (s *Store) Current() *Texture { return s.current }

// Len returns the number of texture objects, the default one included.
func (s *Store) Len() int { return len(s.textures) }
