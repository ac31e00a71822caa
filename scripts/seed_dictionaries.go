// 手动初始化错题分类与错误原因字典脚本
//
// 学科字典在应用启动时自动补种，分类和原因需要按学校习惯调整，
// 所以放在脚本里手动执行。重复执行是安全的，已存在的条目会被跳过。
//
// 用法: go run scripts/seed_dictionaries.go
package main

import (
	"errors"
	"log"

	"wrongbook_backend/internal/config"
	"wrongbook_backend/internal/model"
	"wrongbook_backend/internal/repository"
	"wrongbook_backend/internal/service"
	"wrongbook_backend/internal/util"
	"wrongbook_backend/pkg/database"
	"wrongbook_backend/pkg/logger"
)

var defaultCategories = []struct {
	name        string
	description string
	reasons     []string
}{
	{"计算错误", "运算过程出错", []string{"进位/借位出错", "口算失误", "抄错数字"}},
	{"审题失误", "没有正确理解题意", []string{"漏看条件", "看错问题", "单位混淆"}},
	{"概念不清", "知识点没有掌握", []string{"公式记错", "概念混淆"}},
	{"书写规范", "过程或格式问题", []string{"步骤不完整", "单位漏写"}},
}

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("连接数据库失败: %v", err)
	}

	metadata := service.NewMetadataService(
		repository.NewSubjectRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewErrorReasonRepository(db),
	)

	created := 0
	for _, entry := range defaultCategories {
		category, err := metadata.CreateCategory(service.CreateCategoryInput{
			Name:        entry.name,
			Description: entry.description,
		})
		if err != nil {
			if !isConflict(err) {
				log.Fatalf("创建分类 %q 失败: %v", entry.name, err)
			}
			log.Printf("分类 %q 已存在，跳过", entry.name)
			category, err = findCategory(metadata, entry.name)
			if err != nil {
				log.Fatalf("查找分类 %q 失败: %v", entry.name, err)
			}
		} else {
			created++
		}

		for _, reasonName := range entry.reasons {
			_, err := metadata.CreateErrorReason(service.CreateErrorReasonInput{
				Name:       reasonName,
				CategoryID: &category.ID,
			})
			if err != nil {
				if !isConflict(err) {
					log.Fatalf("创建原因 %q 失败: %v", reasonName, err)
				}
				continue
			}
			created++
		}
	}

	log.Printf("字典初始化完成，新增 %d 条", created)
}

func isConflict(err error) bool {
	return util.KindOf(err) == util.KindConflict
}

func findCategory(metadata *service.MetadataService, name string) (*model.WrongQuestionCategory, error) {
	categories, _, err := metadata.ListCategories(0, 100)
	if err != nil {
		return nil, err
	}
	for i := range categories {
		if categories[i].Name == name {
			return &categories[i], nil
		}
	}
	return nil, errors.New("category not found after conflict")
}
