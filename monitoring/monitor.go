// Package monitoring turns a board session into a small web server for live
// inspection of the grid, the backlog, and the registered components.
package monitoring

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/syifan/goseth"

	"github.com/xkazm04/goat/board"
	"github.com/xkazm04/goat/board/naming"
)

// A GridProvider exposes a snapshot of the grid contents.
type GridProvider interface {
	naming.Named
	State() board.GridState
}

// A BacklogProvider exposes the backlog pool contents.
type BacklogProvider interface {
	naming.Named
	Items() []board.BacklogItem
}

// Monitor can turn a board session into a server and allows external
// inspection of the session.
type Monitor struct {
	portNumber int
	url        string

	components []naming.Named
	grid       GridProvider
	backlog    BacklogProvider
}

// NewMonitor creates a new Monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n",
			portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterGrid registers the grid whose contents the monitor serves.
func (m *Monitor) RegisterGrid(g GridProvider) {
	m.grid = g
	m.RegisterComponent(g)
}

// RegisterBacklog registers the backlog pool the monitor serves.
func (m *Monitor) RegisterBacklog(p BacklogProvider) {
	m.backlog = p
	m.RegisterComponent(p)
}

// RegisterComponent registers a component to be monitored.
func (m *Monitor) RegisterComponent(c naming.Named) {
	m.components = append(m.components, c)
}

// StartServer starts the monitor as a web server, on the configured port or a
// random free one.
func (m *Monitor) StartServer() {
	r := mux.NewRouter()
	r.HandleFunc("/api/list_components", m.listComponents)
	r.HandleFunc("/api/component/{name}", m.listComponentDetails)
	r.HandleFunc("/api/grid", m.gridState)
	r.HandleFunc("/api/backlog", m.backlogItems)
	http.Handle("/", r)

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	m.url = fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)

	fmt.Fprintf(os.Stderr, "Monitoring board session with %s\n", m.url)

	go func() {
		err = http.Serve(listener, nil)
		dieOnErr(err)
	}()
}

// OpenDashboard opens the monitor in the system browser. The server must be
// started first.
func (m *Monitor) OpenDashboard() {
	if m.url == "" {
		panic("monitor server not started")
	}

	err := browser.OpenURL(m.url + "/api/grid")
	dieOnErr(err)
}

func (m *Monitor) listComponents(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprint(w, "[")
	for i, c := range m.components {
		if i > 0 {
			fmt.Fprint(w, ",")
		}

		fmt.Fprintf(w, "%q", c.Name())
	}
	fmt.Fprint(w, "]")
}

func (m *Monitor) listComponentDetails(
	w http.ResponseWriter,
	r *http.Request,
) {
	name := mux.Vars(r)["name"]

	component := m.findComponentOr404(w, name)
	if component == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(component)
	serializer.SetMaxDepth(1)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

func (m *Monitor) gridState(w http.ResponseWriter, _ *http.Request) {
	if m.grid == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	err := json.NewEncoder(w).Encode(m.grid.State())
	dieOnErr(err)
}

func (m *Monitor) backlogItems(w http.ResponseWriter, _ *http.Request) {
	if m.backlog == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	err := json.NewEncoder(w).Encode(m.backlog.Items())
	dieOnErr(err)
}

func (m *Monitor) findComponentOr404(
	w http.ResponseWriter,
	name string,
) naming.Named {
	var component naming.Named

	for _, c := range m.components {
		if c.Name() == name {
			component = c
		}
	}

	if component == nil {
		w.WriteHeader(http.StatusNotFound)
	}

	return component
}

func dieOnErr(err error) {
	if err != nil {
		panic(err)
	}
}
