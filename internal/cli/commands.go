package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/bluecarbonlabs/fieldsync/internal/common"
	"github.com/bluecarbonlabs/fieldsync/internal/models"
)

func (a *App) readLocation() (models.Location, error) {
	lat, err := GetFloat(a.reader, "Latitude:", os.Stdout)
	if err != nil {
		return models.Location{}, err
	}
	lon, err := GetFloat(a.reader, "Longitude:", os.Stdout)
	if err != nil {
		return models.Location{}, err
	}
	acc, err := GetOptionalFloat(a.reader, "GPS accuracy, m", os.Stdout)
	if err != nil {
		return models.Location{}, err
	}
	return models.Location{Latitude: lat, Longitude: lon, Accuracy: acc}, nil
}

func (a *App) addProject(ctx context.Context) {
	name, err := GetSimpleText(a.reader, "Project name:", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return
	}
	description, err := GetSimpleText(a.reader, "Description:", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return
	}
	eco, err := GetSimpleText(a.reader, "Ecosystem (mangrove/seagrass/saltmarsh/kelp):", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return
	}
	loc, err := a.readLocation()
	if err != nil {
		printlnFn(err.Error())
		return
	}
	radius, err := GetFloat(a.reader, "Site radius, m:", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return
	}

	p, err := a.records.AddProject(ctx, models.Project{
		Name:         name,
		Description:  description,
		Ecosystem:    models.EcosystemType(eco),
		Location:     loc,
		RadiusMeters: radius,
	})
	if err != nil {
		printlnFn(err.Error())
		return
	}
	printlnFn("Saved project", p.ID)
}

// readMeasurementHeader collects the fields shared by every measurement kind.
func (a *App) readMeasurementHeader() (projectID string, loc models.Location, notes string, err error) {
	projectID, err = GetSimpleText(a.reader, "Project id:", os.Stdout)
	if err != nil {
		return "", models.Location{}, "", err
	}
	loc, err = a.readLocation()
	if err != nil {
		return "", models.Location{}, "", err
	}
	notes, err = GetSimpleText(a.reader, "Notes (optional):", os.Stdout)
	if err != nil {
		return "", models.Location{}, "", err
	}
	return projectID, loc, notes, nil
}

func (a *App) saveMeasurement(ctx context.Context, projectID string, loc models.Location, payload models.Payload, notes string) {
	m, err := a.records.AddMeasurement(ctx, projectID, loc, payload, notes)
	if err != nil {
		printlnFn(err.Error())
		return
	}
	printlnFn("Saved measurement", m.ID, "(pending sync)")
}

func (a *App) addBiomass(ctx context.Context) {
	projectID, loc, notes, err := a.readMeasurementHeader()
	if err != nil {
		printlnFn(err.Error())
		return
	}

	trees, err := GetInt(a.reader, "Tree count:", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return
	}
	height, err := GetFloat(a.reader, "Average height, m:", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return
	}
	diameter, err := GetFloat(a.reader, "Average diameter, m:", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return
	}
	canopy, err := GetFloat(a.reader, "Canopy cover, 0..1:", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return
	}

	a.saveMeasurement(ctx, projectID, loc, models.Biomass{
		TreeCount:       trees,
		AverageHeight:   height,
		AverageDiameter: diameter,
		CanopyCover:     canopy,
	}, notes)
}

func (a *App) addSoil(ctx context.Context) {
	projectID, loc, notes, err := a.readMeasurementHeader()
	if err != nil {
		printlnFn(err.Error())
		return
	}

	depth, err := GetFloat(a.reader, "Core depth, m:", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return
	}
	carbon, err := GetFloat(a.reader, "Carbon content, %:", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return
	}
	ph, err := GetFloat(a.reader, "pH:", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return
	}
	salinity, err := GetFloat(a.reader, "Salinity, ppt:", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return
	}

	a.saveMeasurement(ctx, projectID, loc, models.Soil{
		SoilDepth:     depth,
		CarbonContent: carbon,
		PH:            ph,
		Salinity:      salinity,
	}, notes)
}

func (a *App) addWater(ctx context.Context) {
	projectID, loc, notes, err := a.readMeasurementHeader()
	if err != nil {
		printlnFn(err.Error())
		return
	}

	depth, err := GetFloat(a.reader, "Water depth, m:", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return
	}
	temp, err := GetFloat(a.reader, "Temperature, C:", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return
	}
	turbidity, err := GetFloat(a.reader, "Turbidity, NTU:", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return
	}

	a.saveMeasurement(ctx, projectID, loc, models.Water{
		WaterDepth:  depth,
		Temperature: temp,
		Turbidity:   turbidity,
	}, notes)
}

func (a *App) addSpecies(ctx context.Context) {
	projectID, loc, notes, err := a.readMeasurementHeader()
	if err != nil {
		printlnFn(err.Error())
		return
	}

	name, err := GetSimpleText(a.reader, "Species name:", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return
	}
	abundance, err := GetInt(a.reader, "Abundance (individuals):", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return
	}
	health, err := GetSimpleText(a.reader, "Health (excellent/good/fair/poor):", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return
	}

	a.saveMeasurement(ctx, projectID, loc, models.Species{
		SpeciesName: name,
		Abundance:   abundance,
		Health:      models.HealthStatus(health),
	}, notes)
}

func (a *App) addPhoto(ctx context.Context) {
	uri, err := GetSimpleText(a.reader, "Photo uri:", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return
	}
	category, err := GetSimpleText(a.reader, "Category (field/equipment/species/damage/general):", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return
	}
	description, err := GetSimpleText(a.reader, "Description (optional):", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return
	}

	p, err := a.records.AddPhoto(ctx, uri, models.PhotoCategory(category), nil, description)
	if err != nil {
		printlnFn(err.Error())
		return
	}
	printlnFn("Saved photo", p.ID, "(pending sync)")
}

func (a *App) projects(ctx context.Context) {
	list, err := a.records.ListProjects(ctx)
	if err != nil {
		printlnFn(err.Error())
		return
	}
	for _, p := range list {
		printlnFn(fmt.Sprintf("%s  %-12s %-10s %s", p.ID, p.Ecosystem, p.Status, p.Name))
	}
}

func (a *App) list(ctx context.Context, projectID string) {
	list, err := a.records.ListMeasurements(ctx, projectID)
	if err != nil {
		printlnFn(err.Error())
		return
	}
	for _, m := range list {
		flag := "pending"
		if m.Synced {
			flag = "synced"
		}
		when := time.UnixMilli(m.Timestamp).Format(time.RFC3339)
		printlnFn(fmt.Sprintf("%s  %-8s %-8s %s", m.ID, m.Type, flag, when))
	}
}

func (a *App) photos(ctx context.Context) {
	list, err := a.records.ListPhotos(ctx)
	if err != nil {
		printlnFn(err.Error())
		return
	}
	for _, p := range list {
		flag := "pending"
		if p.Synced {
			flag = "synced"
		}
		printlnFn(fmt.Sprintf("%s  %-9s %-8s %s", p.ID, p.Category, flag, p.URI))
	}
}

func (a *App) pending(ctx context.Context) {
	list, err := a.store.ListUnsynced(ctx)
	if err != nil {
		printlnFn(err.Error())
		return
	}
	for _, r := range list {
		when := time.UnixMilli(r.CreatedAt()).Format(time.RFC3339)
		printlnFn(fmt.Sprintf("%-11s %s  %s", r.Kind, r.ID(), when))
	}
	printlnFn(len(list), "record(s) waiting for sync")
}

func (a *App) status(ctx context.Context) {
	st := a.syncer.Status().Get()

	conn := "offline"
	if st.Online {
		conn = "online"
	}
	printlnFn("Connectivity:        ", conn)
	printlnFn("Pending measurements:", st.PendingMeasurements)
	printlnFn("Pending photos:      ", st.PendingPhotos)
	if st.LastSync != nil {
		printlnFn("Last sync:           ", st.LastSync.Format(time.RFC3339))
	} else {
		printlnFn("Last sync:            never")
	}
	if st.SyncError != "" {
		printlnFn("Last sync error:     ", st.SyncError)
	}

	counts, err := a.store.Counts(ctx)
	if err != nil {
		printlnFn(err.Error())
		return
	}
	printlnFn(fmt.Sprintf("Stored locally:       %d measurements, %d photos, %d projects",
		counts.Measurements, counts.Photos, counts.Projects))
}

func (a *App) sync(ctx context.Context) {
	err := a.syncer.Sync(ctx)
	switch {
	case errors.Is(err, common.ErrOffline):
		printlnFn("Device is offline, records kept for later")
	case errors.Is(err, common.ErrNothingSynced):
		printlnFn("Sync failed:", err.Error())
	case err != nil:
		printlnFn(err.Error())
	default:
		printlnFn("Sync finished")
	}
}

func (a *App) clearHistory(ctx context.Context) {
	a.syncer.ClearHistory(ctx)
	printlnFn("Sync history cleared")
}

func (a *App) purge(ctx context.Context) {
	if err := a.store.PurgeSynced(ctx); err != nil {
		printlnFn(err.Error())
		return
	}
	printlnFn("Synced records deleted")
}

func (a *App) purgeAll(ctx context.Context) {
	answer, err := GetSimpleText(a.reader, "This deletes ALL local data, type 'yes' to confirm:", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return
	}
	if answer != "yes" {
		printlnFn("Aborted")
		return
	}
	if err := a.store.PurgeAll(ctx); err != nil {
		printlnFn(err.Error())
		return
	}
	_ = a.syncer.RefreshCounts(ctx)
	printlnFn("Local data deleted")
}
