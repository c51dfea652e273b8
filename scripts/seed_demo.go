// 开发环境演示数据脚本
//
// 往数据库写入一批演示用的校友和学生账号，方便本地联调校友目录
// 和导师申请流程。生产环境不要执行。
//
// 用法: go run scripts/seed_demo.go

package main

import (
	"alumni_connect_backend/internal/config"
	"alumni_connect_backend/internal/model"
	"alumni_connect_backend/pkg/database"
	"alumni_connect_backend/pkg/logger"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
)

type demoUser struct {
	name        string
	email       string
	role        model.UserRole
	batch       int
	company     string
	designation string
	linkedin    string
	phone       string
}

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	demos := []demoUser{
		{"陈嘉怡", "chenjiayi@example.com", model.Alumni, 2016, "字节跳动", "后端工程师", "https://linkedin.com/in/chenjiayi", "+86-13800000001"},
		{"刘子墨", "liuzimo@example.com", model.Alumni, 2018, "蚂蚁集团", "数据工程师", "https://linkedin.com/in/liuzimo", "+86-13800000002"},
		{"王思远", "wangsiyuan@example.com", model.Alumni, 2019, "美团", "产品经理", "", "+86-13800000003"},
		{"林晓彤", "linxiaotong@example.com", model.Alumni, 2021, "小红书", "算法工程师", "https://linkedin.com/in/linxiaotong", ""},
		{"赵一鸣", "zhaoyiming@example.com", model.Student, 0, "", "", "", ""},
		{"孙可欣", "sunkexin@example.com", model.Student, 0, "", "", "", ""},
		{"周老师", "zhoulaoshi@example.com", model.Faculty, 0, "", "", "", ""},
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("demo123456"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("密码哈希失败: %v", err)
	}

	created := 0
	for _, d := range demos {
		var count int64
		db.Model(&model.User{}).Where("email = ?", d.email).Count(&count)
		if count > 0 {
			continue
		}

		u := &model.User{
			Name:        d.name,
			Email:       d.email,
			Password:    string(hashed),
			Role:        d.role,
			Batch:       d.batch,
			Company:     d.company,
			Designation: d.designation,
		}
		if d.linkedin != "" {
			u.LinkedinURL = &d.linkedin
		}
		if d.phone != "" {
			u.PhoneNumber = &d.phone
		}

		if err := db.Create(u).Error; err != nil {
			log.Fatalf("创建用户 %s 失败: %v", d.email, err)
		}
		created++
	}

	fmt.Printf("演示数据写入完成，新建 %d 个账号（统一密码 demo123456）\n", created)
}
