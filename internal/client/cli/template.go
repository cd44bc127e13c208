package cli

const usageText = `Taskkeeper Client

Usage:
  taskkeeper [OPTIONS] COMMAND

Options:
  --version          Show version information
  --server URL       Server URL (default: http://localhost:8080)
  --db PATH          Path to local database (default: taskkeeper-client.db)

Commands:
  register           Register a new account
  login              Login to the server
  logout             Logout from this device
  logout-all         Logout everywhere
  whoami             Show the current profile
  add <description>  Create a task
  list               List tasks (--completed, --pending, --desc, --limit N, --skip N)
  done <id>          Mark a task completed
  rm <id>            Delete a task

Examples:
  taskkeeper register
  taskkeeper login
  taskkeeper add "water the plants"
  taskkeeper list --pending
  taskkeeper done b692f5c0-2d88-4aa1-a9e1-13aa6e4976d5
  taskkeeper --server https://example.com login
`

const taskListTemplate = `
{{- if eq (len .) 0 }}
No tasks found.

Use 'taskkeeper add <description>' to create your first task.
{{ else }}
Found {{len .}} task(s):

{{- range . }}
{{ if .Completed }}[x]{{ else }}[ ]{{ end }} {{ .Description }}
    ID:      {{ .ID }}
    Created: {{ .CreatedAt.Format "2006-01-02 15:04" }}
{{- end }}
{{ end }}
`
