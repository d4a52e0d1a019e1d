package block

// Typed accessors, one set per param type. They forward to Get, Set and Add.

// GetS32 returns the first S32 param named name, or def when it is missing or of another type.
func (b *DataBlock) GetS32(name string, def int32) int32 { return Get(b, name, def) }

// SetS32 overwrites the first param named name, or appends one. It returns the param index.
func (b *DataBlock) SetS32(name string, v int32) (int, error) { return Set(b, name, v) }

// AddS32 appends a new param named name, even when one already exists.
func (b *DataBlock) AddS32(name string, v int32) (int, error) { return Add(b, name, v) }

// GetS64 returns the first S64 param named name, or def.
func (b *DataBlock) GetS64(name string, def int64) int64 { return Get(b, name, def) }

// SetS64 overwrites or appends the S64 param named name.
func (b *DataBlock) SetS64(name string, v int64) (int, error) { return Set(b, name, v) }

// AddS64 appends a new S64 param named name.
func (b *DataBlock) AddS64(name string, v int64) (int, error) { return Add(b, name, v) }

// GetU32 returns the first U32 param named name, or def.
func (b *DataBlock) GetU32(name string, def uint32) uint32 { return Get(b, name, def) }

// SetU32 overwrites or appends the U32 param named name.
func (b *DataBlock) SetU32(name string, v uint32) (int, error) { return Set(b, name, v) }

// AddU32 appends a new U32 param named name.
func (b *DataBlock) AddU32(name string, v uint32) (int, error) { return Add(b, name, v) }

// GetU64 returns the first U64 param named name, or def.
func (b *DataBlock) GetU64(name string, def uint64) uint64 { return Get(b, name, def) }

// SetU64 overwrites or appends the U64 param named name.
func (b *DataBlock) SetU64(name string, v uint64) (int, error) { return Set(b, name, v) }

// AddU64 appends a new U64 param named name.
func (b *DataBlock) AddU64(name string, v uint64) (int, error) { return Add(b, name, v) }

// GetF32 returns the first F32 param named name, or def.
func (b *DataBlock) GetF32(name string, def float32) float32 { return Get(b, name, def) }

// SetF32 overwrites or appends the F32 param named name.
func (b *DataBlock) SetF32(name string, v float32) (int, error) { return Set(b, name, v) }

// AddF32 appends a new F32 param named name.
func (b *DataBlock) AddF32(name string, v float32) (int, error) { return Add(b, name, v) }

// GetF64 returns the first F64 param named name, or def.
func (b *DataBlock) GetF64(name string, def float64) float64 { return Get(b, name, def) }

// SetF64 overwrites or appends the F64 param named name.
func (b *DataBlock) SetF64(name string, v float64) (int, error) { return Set(b, name, v) }

// AddF64 appends a new F64 param named name.
func (b *DataBlock) AddF64(name string, v float64) (int, error) { return Add(b, name, v) }

// GetBool returns the first Bool param named name, or def.
func (b *DataBlock) GetBool(name string, def bool) bool { return Get(b, name, def) }

// SetBool overwrites or appends the Bool param named name.
func (b *DataBlock) SetBool(name string, v bool) (int, error) { return Set(b, name, v) }

// AddBool appends a new Bool param named name.
func (b *DataBlock) AddBool(name string, v bool) (int, error) { return Add(b, name, v) }

// GetVec2S returns the first Vec2S param named name, or def.
func (b *DataBlock) GetVec2S(name string, def Vec2S) Vec2S { return Get(b, name, def) }

// SetVec2S overwrites or appends the Vec2S param named name.
func (b *DataBlock) SetVec2S(name string, v Vec2S) (int, error) { return Set(b, name, v) }

// AddVec2S appends a new Vec2S param named name.
func (b *DataBlock) AddVec2S(name string, v Vec2S) (int, error) { return Add(b, name, v) }

// GetVec3S returns the first Vec3S param named name, or def.
func (b *DataBlock) GetVec3S(name string, def Vec3S) Vec3S { return Get(b, name, def) }

// SetVec3S overwrites or appends the Vec3S param named name.
func (b *DataBlock) SetVec3S(name string, v Vec3S) (int, error) { return Set(b, name, v) }

// AddVec3S appends a new Vec3S param named name.
func (b *DataBlock) AddVec3S(name string, v Vec3S) (int, error) { return Add(b, name, v) }

// GetVec4S returns the first Vec4S param named name, or def.
func (b *DataBlock) GetVec4S(name string, def Vec4S) Vec4S { return Get(b, name, def) }

// SetVec4S overwrites or appends the Vec4S param named name.
func (b *DataBlock) SetVec4S(name string, v Vec4S) (int, error) { return Set(b, name, v) }

// AddVec4S appends a new Vec4S param named name.
func (b *DataBlock) AddVec4S(name string, v Vec4S) (int, error) { return Add(b, name, v) }

// GetVec2U returns the first Vec2U param named name, or def.
func (b *DataBlock) GetVec2U(name string, def Vec2U) Vec2U { return Get(b, name, def) }

// SetVec2U overwrites or appends the Vec2U param named name.
func (b *DataBlock) SetVec2U(name string, v Vec2U) (int, error) { return Set(b, name, v) }

// AddVec2U appends a new Vec2U param named name.
func (b *DataBlock) AddVec2U(name string, v Vec2U) (int, error) { return Add(b, name, v) }

// GetVec3U returns the first Vec3U param named name, or def.
func (b *DataBlock) GetVec3U(name string, def Vec3U) Vec3U { return Get(b, name, def) }

// SetVec3U overwrites or appends the Vec3U param named name.
func (b *DataBlock) SetVec3U(name string, v Vec3U) (int, error) { return Set(b, name, v) }

// AddVec3U appends a new Vec3U param named name.
func (b *DataBlock) AddVec3U(name string, v Vec3U) (int, error) { return Add(b, name, v) }

// GetVec4U returns the first Vec4U param named name, or def.
func (b *DataBlock) GetVec4U(name string, def Vec4U) Vec4U { return Get(b, name, def) }

// SetVec4U overwrites or appends the Vec4U param named name.
func (b *DataBlock) SetVec4U(name string, v Vec4U) (int, error) { return Set(b, name, v) }

// AddVec4U appends a new Vec4U param named name.
func (b *DataBlock) AddVec4U(name string, v Vec4U) (int, error) { return Add(b, name, v) }

// GetVec2F returns the first Vec2F param named name, or def.
func (b *DataBlock) GetVec2F(name string, def Vec2F) Vec2F { return Get(b, name, def) }

// SetVec2F overwrites or appends the Vec2F param named name.
func (b *DataBlock) SetVec2F(name string, v Vec2F) (int, error) { return Set(b, name, v) }

// AddVec2F appends a new Vec2F param named name.
func (b *DataBlock) AddVec2F(name string, v Vec2F) (int, error) { return Add(b, name, v) }

// GetVec3F returns the first Vec3F param named name, or def.
func (b *DataBlock) GetVec3F(name string, def Vec3F) Vec3F { return Get(b, name, def) }

// SetVec3F overwrites or appends the Vec3F param named name.
func (b *DataBlock) SetVec3F(name string, v Vec3F) (int, error) { return Set(b, name, v) }

// AddVec3F appends a new Vec3F param named name.
func (b *DataBlock) AddVec3F(name string, v Vec3F) (int, error) { return Add(b, name, v) }

// GetVec4F returns the first Vec4F param named name, or def.
func (b *DataBlock) GetVec4F(name string, def Vec4F) Vec4F { return Get(b, name, def) }

// SetVec4F overwrites or appends the Vec4F param named name.
func (b *DataBlock) SetVec4F(name string, v Vec4F) (int, error) { return Set(b, name, v) }

// AddVec4F appends a new Vec4F param named name.
func (b *DataBlock) AddVec4F(name string, v Vec4F) (int, error) { return Add(b, name, v) }

// GetVec2B returns the first Vec2B param named name, or def.
func (b *DataBlock) GetVec2B(name string, def Vec2B) Vec2B { return Get(b, name, def) }

// SetVec2B overwrites or appends the Vec2B param named name.
func (b *DataBlock) SetVec2B(name string, v Vec2B) (int, error) { return Set(b, name, v) }

// AddVec2B appends a new Vec2B param named name.
func (b *DataBlock) AddVec2B(name string, v Vec2B) (int, error) { return Add(b, name, v) }

// GetVec3B returns the first Vec3B param named name, or def.
func (b *DataBlock) GetVec3B(name string, def Vec3B) Vec3B { return Get(b, name, def) }

// SetVec3B overwrites or appends the Vec3B param named name.
func (b *DataBlock) SetVec3B(name string, v Vec3B) (int, error) { return Set(b, name, v) }

// AddVec3B appends a new Vec3B param named name.
func (b *DataBlock) AddVec3B(name string, v Vec3B) (int, error) { return Add(b, name, v) }

// GetVec4B returns the first Vec4B param named name, or def.
func (b *DataBlock) GetVec4B(name string, def Vec4B) Vec4B { return Get(b, name, def) }

// SetVec4B overwrites or appends the Vec4B param named name.
func (b *DataBlock) SetVec4B(name string, v Vec4B) (int, error) { return Set(b, name, v) }

// AddVec4B appends a new Vec4B param named name.
func (b *DataBlock) AddVec4B(name string, v Vec4B) (int, error) { return Add(b, name, v) }

// GetMat3F returns the first Mat3F param named name, or def.
func (b *DataBlock) GetMat3F(name string, def Mat3F) Mat3F { return Get(b, name, def) }

// SetMat3F overwrites or appends the Mat3F param named name.
func (b *DataBlock) SetMat3F(name string, v Mat3F) (int, error) { return Set(b, name, v) }

// AddMat3F appends a new Mat3F param named name.
func (b *DataBlock) AddMat3F(name string, v Mat3F) (int, error) { return Add(b, name, v) }

// GetMat4F returns the first Mat4F param named name, or def.
func (b *DataBlock) GetMat4F(name string, def Mat4F) Mat4F { return Get(b, name, def) }

// SetMat4F overwrites or appends the Mat4F param named name.
func (b *DataBlock) SetMat4F(name string, v Mat4F) (int, error) { return Set(b, name, v) }

// AddMat4F appends a new Mat4F param named name.
func (b *DataBlock) AddMat4F(name string, v Mat4F) (int, error) { return Add(b, name, v) }

// GetString returns the first String param named name, or def.
func (b *DataBlock) GetString(name string, def string) string { return Get(b, name, def) }

// SetString overwrites or appends the String param named name.
func (b *DataBlock) SetString(name string, v string) (int, error) { return Set(b, name, v) }

// AddString appends a new String param named name.
func (b *DataBlock) AddString(name string, v string) (int, error) { return Add(b, name, v) }
