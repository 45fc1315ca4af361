package phong

// Node is one drawable object: a mesh, the instances placing it in the
// world, its per-object uniform state, and its diffuse texture. Hosts
// build a slice of nodes per scene and hand each to the pipeline; a nil
// Texture means the opaque white identity texture.
type Node struct {
	Mesh      *Mesh
	Instances []Instance
	Locals    Locals
	Texture   *Texture
}

// texture returns the node's texture or the white identity.
func (n *Node) texture() *Texture {
	if n.Texture != nil {
		return n.Texture
	}
	return whiteTexture
}

// InstanceRaws flattens the node's instances, defaulting to a single
// identity instance when none are set so a bare node still draws once.
func (n *Node) InstanceRaws() []InstanceRaw {
	if len(n.Instances) == 0 {
		return []InstanceRaw{RawFromModel(Mat4Identity())}
	}
	raws := make([]InstanceRaw, len(n.Instances))
	for i, in := range n.Instances {
		raws[i] = in.Raw()
	}
	return raws
}

var whiteTexture = WhiteTexture()
