package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	distributiondomain "github.com/smallbiznis/waterline/internal/distribution/domain"
	facilitydomain "github.com/smallbiznis/waterline/internal/facility/domain"
	identitydomain "github.com/smallbiznis/waterline/internal/identity/domain"
	"github.com/smallbiznis/waterline/internal/providers/spreadsheet"
)

func (s *Server) AdminDashboard(c *gin.Context, _ identitydomain.Principal) {
	stats, err := s.dashboardSvc.AdminDashboard(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (s *Server) WaterLevels(c *gin.Context, _ identitydomain.Principal) {
	levels, err := s.facilitySvc.WaterLevels(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if levels == nil {
		levels = []facilitydomain.WaterLevel{}
	}

	c.JSON(http.StatusOK, levels)
}

func (s *Server) EnergyProduction(c *gin.Context, _ identitydomain.Principal) {
	totals, err := s.facilitySvc.EnergyProduction(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if totals == nil {
		totals = []facilitydomain.EnergyTotal{}
	}

	c.JSON(http.StatusOK, totals)
}

func (s *Server) DistributionMonthly(c *gin.Context, _ identitydomain.Principal) {
	volumes, err := s.distributionSvc.MonthlyVolumes(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if volumes == nil {
		volumes = []distributiondomain.MonthlyVolume{}
	}

	c.JSON(http.StatusOK, volumes)
}

func (s *Server) ExportDistributionMonthly(c *gin.Context, p identitydomain.Principal) {
	ctx := c.Request.Context()
	volumes, err := s.distributionSvc.MonthlyVolumes(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	today := s.clock.Now().UTC().Format(dateOnlyLayout)
	rows := make([][]any, 0, len(volumes))
	for _, v := range volumes {
		rows = append(rows, []any{v.Month, v.TotalVolume})
	}
	body, err := s.sheets.Generate(ctx, spreadsheet.Sheet{
		Name:     "Distribution",
		Title:    "Monthly distribution",
		Subtitle: "Trailing 12 months as of " + today,
		Columns: []spreadsheet.Column{
			{Label: "Month", Width: 14},
			{Label: "Total volume", Width: 18},
		},
		Rows: rows,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, p, "distribution.export", "distribution", "", map[string]any{"months": len(volumes)})

	filename := slug.Make("distribution monthly "+today) + ".xlsx"
	c.DataFromReader(http.StatusOK, -1, spreadsheet.ContentType, body, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", filename),
	})
}

func (s *Server) PumpStatus(c *gin.Context, _ identitydomain.Principal) {
	pumps, err := s.facilitySvc.PumpStatus(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if pumps == nil {
		pumps = []facilitydomain.PumpStatus{}
	}

	c.JSON(http.StatusOK, pumps)
}
