package obs

import "encoding/json"

// Typed wrappers for the handful of obs-websocket requests this tool
// uses. Each takes a Caller so both the real client and test fakes fit.

// CanvasSize returns the base (canvas) resolution.
func CanvasSize(c Caller) (int, int, error) {
	var resp struct {
		BaseWidth  int `json:"baseWidth"`
		BaseHeight int `json:"baseHeight"`
	}
	if err := c.Call("GetVideoSettings", nil, &resp); err != nil {
		return 0, 0, err
	}
	return resp.BaseWidth, resp.BaseHeight, nil
}

// CurrentScene returns the active program scene name.
func CurrentScene(c Caller) (string, error) {
	var resp struct {
		SceneName string `json:"currentProgramSceneName"`
	}
	if err := c.Call("GetCurrentProgramScene", nil, &resp); err != nil {
		return "", err
	}
	return resp.SceneName, nil
}

// SceneItemID looks up a source's scene-item id within a scene.
func SceneItemID(c Caller, scene, source string) (int, error) {
	var resp struct {
		SceneItemID int `json:"sceneItemId"`
	}
	err := c.Call("GetSceneItemId", map[string]any{
		"sceneName":  scene,
		"sourceName": source,
	}, &resp)
	if err != nil {
		return 0, err
	}
	return resp.SceneItemID, nil
}

// CreateImageInput creates a hidden image source in the scene and
// returns its scene-item id.
func CreateImageInput(c Caller, scene, name, file string) (int, error) {
	var resp struct {
		SceneItemID int `json:"sceneItemId"`
	}
	err := c.Call("CreateInput", map[string]any{
		"sceneName":        scene,
		"inputName":        name,
		"inputKind":        "image_source",
		"inputSettings":    map[string]any{"file": file},
		"sceneItemEnabled": false,
	}, &resp)
	if err != nil {
		return 0, err
	}
	return resp.SceneItemID, nil
}

// SetImageFile points an existing image source at a different file.
func SetImageFile(c Caller, input, file string) error {
	return c.Call("SetInputSettings", map[string]any{
		"inputName":     input,
		"inputSettings": map[string]any{"file": file},
	}, nil)
}

// SetItemEnabled shows or hides a scene item.
func SetItemEnabled(c Caller, scene string, itemID int, enabled bool) error {
	return c.Call("SetSceneItemEnabled", map[string]any{
		"sceneName":        scene,
		"sceneItemId":      itemID,
		"sceneItemEnabled": enabled,
	}, nil)
}

// SetItemBounds positions a scene item and stretches it into a size-by-
// size bounding box, so indicator images render at the configured
// diameter regardless of the image file's pixel size.
func SetItemBounds(c Caller, scene string, itemID int, x, y, size float64) error {
	return c.Call("SetSceneItemTransform", map[string]any{
		"sceneName":   scene,
		"sceneItemId": itemID,
		"sceneItemTransform": map[string]any{
			"positionX":    x,
			"positionY":    y,
			"boundsType":   "OBS_BOUNDS_STRETCH",
			"boundsWidth":  size,
			"boundsHeight": size,
		},
	}, nil)
}

// RemoveInput deletes a source (and its scene items) by name.
func RemoveInput(c Caller, name string) error {
	return c.Call("RemoveInput", map[string]any{"inputName": name}, nil)
}

// SceneItemTransform is the transform state of a scene item as reported
// by OBS.
type SceneItemTransform struct {
	PositionX    float64 `json:"positionX"`
	PositionY    float64 `json:"positionY"`
	ScaleX       float64 `json:"scaleX"`
	ScaleY       float64 `json:"scaleY"`
	BoundsType   string  `json:"boundsType"`
	BoundsWidth  float64 `json:"boundsWidth"`
	BoundsHeight float64 `json:"boundsHeight"`
	CropLeft     float64 `json:"cropLeft"`
	CropTop      float64 `json:"cropTop"`
	CropRight    float64 `json:"cropRight"`
	CropBottom   float64 `json:"cropBottom"`
	SourceWidth  float64 `json:"sourceWidth"`
	SourceHeight float64 `json:"sourceHeight"`
}

// ItemTransform fetches a scene item's transform state.
func ItemTransform(c Caller, scene string, itemID int) (SceneItemTransform, error) {
	var resp struct {
		SceneItemTransform SceneItemTransform `json:"sceneItemTransform"`
	}
	err := c.Call("GetSceneItemTransform", map[string]any{
		"sceneName":   scene,
		"sceneItemId": itemID,
	}, &resp)
	if err != nil {
		return SceneItemTransform{}, err
	}
	return resp.SceneItemTransform, nil
}

// InputSettings fetches a source's input settings as a loose map; the
// capture sources expose their own crop there (cut_left etc.).
func InputSettings(c Caller, input string) (map[string]any, error) {
	var resp struct {
		InputSettings map[string]any `json:"inputSettings"`
	}
	if err := c.Call("GetInputSettings", map[string]any{"inputName": input}, &resp); err != nil {
		return nil, err
	}
	return resp.InputSettings, nil
}

// SourceFilter is one filter on a source.
type SourceFilter struct {
	Kind     string         `json:"filterKind"`
	Name     string         `json:"filterName"`
	Enabled  bool           `json:"filterEnabled"`
	Settings map[string]any `json:"filterSettings"`
}

// SourceFilters lists a source's filters.
func SourceFilters(c Caller, source string) ([]SourceFilter, error) {
	var resp struct {
		Filters []SourceFilter `json:"filters"`
	}
	if err := c.Call("GetSourceFilterList", map[string]any{"sourceName": source}, &resp); err != nil {
		return nil, err
	}
	return resp.Filters, nil
}

// numberSetting reads a numeric field from a loose settings map; absent
// or non-numeric values read as zero.
func numberSetting(settings map[string]any, key string) float64 {
	switch v := settings[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case json.Number:
		f, _ := v.Float64()
		return f
	default:
		return 0
	}
}
