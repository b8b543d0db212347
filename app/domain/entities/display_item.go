package entities

// DisplayItem is one row of launcher output.
type DisplayItem struct {
	UID      string `json:"uid"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Arg      string `json:"arg"`
	Mods     *Mods  `json:"mods,omitempty"`
}

// Mods holds the alternative subtitles shown while a modifier key is held.
type Mods struct {
	Cmd *ModSubtitle `json:"cmd,omitempty"`
}

// ModSubtitle is the subtitle variant for a single modifier.
type ModSubtitle struct {
	Subtitle string `json:"subtitle"`
}

// WithCopySubtitle returns a copy of the item carrying a cmd-modifier subtitle.
func (i DisplayItem) WithCopySubtitle(subtitle string) DisplayItem {
	i.Mods = &Mods{Cmd: &ModSubtitle{Subtitle: subtitle}}
	return i
}

// ItemList is the document printed to stdout.
type ItemList struct {
	Items []DisplayItem `json:"items"`
}
