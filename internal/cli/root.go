package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

func (a *App) getStatus() string {
	st := a.syncer.Status().Get()

	conn := "offline"
	if st.Online {
		conn = "online"
	}
	pending := st.PendingMeasurements + st.PendingPhotos
	return fmt.Sprintf("(%s, %d pending)", conn, pending)
}

func (a *App) Root(ctx context.Context) {

	printlnFn("Welcome to fieldsync CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	ctxProbe, cancel := context.WithCancel(ctx)
	defer cancel()
	a.syncer.CheckOnline(ctxProbe)
	_ = a.syncer.RefreshCounts(ctxProbe)

	for {
		fmt.Printf("fs %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			printlnFn("Capture:  addproject, addbiomass, addsoil, addwater, addspecies, addphoto")
			printlnFn("Browse:   projects, (l)ist [project-id], photos, pending, status")
			printlnFn("Sync:     sync, clearhistory")
			printlnFn("Storage:  purge (synced records), purgeall")
			printlnFn("Other:    help, exit, quit")

		case "addproject":
			a.addProject(ctx)
		case "addbiomass":
			a.addBiomass(ctx)
		case "addsoil":
			a.addSoil(ctx)
		case "addwater":
			a.addWater(ctx)
		case "addspecies":
			a.addSpecies(ctx)
		case "addphoto":
			a.addPhoto(ctx)
		case "projects":
			a.projects(ctx)
		case "l", "list":
			projectID := ""
			if len(args) > 0 {
				projectID = args[0]
			}
			a.list(ctx, projectID)
		case "photos":
			a.photos(ctx)
		case "pending":
			a.pending(ctx)
		case "status":
			a.status(ctx)
		case "sync":
			a.sync(ctx)
		case "clearhistory":
			a.clearHistory(ctx)
		case "purge":
			a.purge(ctx)
		case "purgeall":
			a.purgeAll(ctx)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}
	}

}
