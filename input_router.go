package overlay

// Tool names the router assigns to extended input devices on first sight.
const (
	ToolCalligraphic = "calligraphic"
	ToolEraser       = "eraser"
	ToolSelect       = "select"
)

// ToolSwitcher is the editor's active-tool state, driven by InputRouter.
type ToolSwitcher interface {
	CurrentTool() string
	SwitchTool(name string)
}

// InputRouter switches tools when input moves between extended devices: a
// pen gets the calligraphic tool, an eraser the eraser, a puck the selector.
// The tool in use when a device is left is remembered and restored the next
// time it produces events. Mouse devices and the tablet pad are ignored.
//
// A router belongs to one editing session; install it with WithInputRouter.
type InputRouter struct {
	tools      ToolSwitcher
	toolToUse  map[string]string
	lastName   string
	lastSource InputSource
}

// NewInputRouter creates a router for devices, switching tools through
// tools.
func NewInputRouter(tools ToolSwitcher, devices ...Device) *InputRouter {
	r := &InputRouter{
		tools:      tools,
		toolToUse:  make(map[string]string),
		lastSource: SourceMouse,
	}
	for _, d := range devices {
		r.AddDevice(d)
	}
	return r
}

// AddDevice registers d with its initial tool. Unnamed devices, mice, the
// "pad" device and sources without a default tool are skipped.
func (r *InputRouter) AddDevice(d Device) {
	if d.Name == "" || d.Name == "pad" || d.Source == SourceMouse {
		return
	}
	switch d.Source {
	case SourcePen:
		r.toolToUse[d.Name] = ToolCalligraphic
	case SourceEraser:
		r.toolToUse[d.Name] = ToolEraser
	case SourceCursor:
		r.toolToUse[d.Name] = ToolSelect
	}
}

// ToolFor returns the tool remembered for the named device.
func (r *InputRouter) ToolFor(name string) (string, bool) {
	t, ok := r.toolToUse[name]
	return t, ok
}

// Snoop inspects ev and switches tools if it comes from a different device
// than the previous pointer event.
func (r *InputRouter) Snoop(ev Event) {
	switch ev.Type {
	case EventMotion, EventButtonPress, EventButtonRelease, EventScroll:
	default:
		return
	}
	name, source := ev.Device.Name, ev.Device.Source
	if name == "" || (name == r.lastName && source == r.lastSource) {
		return
	}
	if _, ok := r.toolToUse[r.lastName]; ok && r.tools != nil {
		r.toolToUse[r.lastName] = r.tools.CurrentTool()
	}
	if tool, ok := r.toolToUse[name]; ok && r.tools != nil {
		Logger().Debug("overlay: input device changed", "device", name, "tool", tool)
		r.tools.SwitchTool(tool)
	}
	r.lastName = name
	r.lastSource = source
}
