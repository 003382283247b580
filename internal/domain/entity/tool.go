package entity

type ToolName string

const (
	ToolTerminal          ToolName = "terminal"
	ToolReadFile          ToolName = "read_file"
	ToolWriteFile         ToolName = "write_file"
	ToolWebSearch         ToolName = "web_search"
	ToolWebFetch          ToolName = "web_fetch"
	ToolCalculator        ToolName = "calculator"
	ToolBrowser           ToolName = "browser"
	ToolBrowserScreenshot ToolName = "browser_screenshot"
)

func (t ToolName) String() string {
	return string(t)
}
